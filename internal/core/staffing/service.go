package staffing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

// Service は定員集計のユースケースをまとめます。
type Service struct {
	source SnapshotSource
	mode   VacancyMode
	logger *zap.Logger
}

// UseCase は定員集計ユースケースの公開インターフェースです。
type UseCase interface {
	GetVacancyCount(ctx context.Context, in GetVacancyCountInput) (*VacancyCountResult, error)
	GetDirectVacancyCount(ctx context.Context, in GetDirectVacancyCountInput) (*VacancyCountResult, error)
}

// NewService は Service を生成します。tx が nil の場合はトランザクションを張りません。
func NewService(source SnapshotSource, tx TransactionManager, mode VacancyMode, logger *zap.Logger) *Service {
	if mode == "" {
		mode = VacancyModeTotal
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: NewTransactionalSource(source, tx), mode: mode, logger: logger}
}

// GetVacancyCountInput は集計時の入力です。
type GetVacancyCountInput struct {
	DepartmentID *int64
	PositionID   *int64
	DirectOnly   bool
}

// GetDirectVacancyCountInput は (部署, 役職) の組だけを集計する際の入力です。
type GetDirectVacancyCountInput struct {
	DepartmentID int64
	PositionID   int64
}

// VacancyCountResult は集計結果です。
type VacancyCountResult struct {
	Count    Count
	Strategy Strategy
}

// GetVacancyCount は部署・役職・組織全体の定員と空席を集計します。
func (s *Service) GetVacancyCount(ctx context.Context, in GetVacancyCountInput) (*VacancyCountResult, error) {
	if in.DepartmentID != nil && *in.DepartmentID <= 0 {
		return nil, ErrInvalidDepartmentID
	}
	if in.PositionID != nil && *in.PositionID <= 0 {
		return nil, ErrInvalidPositionID
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	q := Query{DepartmentID: in.DepartmentID, PositionID: in.PositionID, DirectOnly: in.DirectOnly}
	engine := NewEngine(snap)

	start := time.Now()
	strategy := engine.Resolve(q)
	count := engine.Count(q)

	s.logger.Debug("vacancy count computed",
		zap.String("strategy", string(strategy)),
		zap.Int64p("department_id", in.DepartmentID),
		zap.Int64p("position_id", in.PositionID),
		zap.Int("total", count.Total),
		zap.Int("occupied", count.Occupied),
		zap.Int("vacant", count.Vacant),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &VacancyCountResult{Count: count, Strategy: strategy}, nil
}

// GetDirectVacancyCount は (部署, 役職) の組だけを集計します。
func (s *Service) GetDirectVacancyCount(ctx context.Context, in GetDirectVacancyCountInput) (*VacancyCountResult, error) {
	if in.DepartmentID <= 0 {
		return nil, fmt.Errorf("department_id: %w", ErrInvalidDepartmentID)
	}
	if in.PositionID <= 0 {
		return nil, fmt.Errorf("position_id: %w", ErrInvalidPositionID)
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	count := NewEngine(snap).Direct(in.DepartmentID, in.PositionID)
	return &VacancyCountResult{Count: count, Strategy: StrategyDirectPair}, nil
}

func (s *Service) loadSnapshot(ctx context.Context) (*Snapshot, error) {
	records, err := s.source.LoadRecords(ctx)
	if err != nil {
		s.logger.Error("failed to load snapshot", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSnapshotUnavailable, err)
	}

	snap, err := NewSnapshot(records, s.mode)
	if err != nil {
		s.logger.Error("snapshot rejected", zap.Error(err))
		return nil, err
	}

	return snap, nil
}
