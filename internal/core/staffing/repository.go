package staffing

import "context"

// SnapshotSource は集計1回分の生データを提供する抽象です。
type SnapshotSource interface {
	LoadRecords(ctx context.Context) (*Records, error)
}

type transactionalSource struct {
	source SnapshotSource
	tx     TransactionManager
}

// NewTransactionalSource は読み込みを読み取り専用トランザクション内で行う SnapshotSource を返します。
// キャッシュの内側に置くと、キャッシュヒット時にはトランザクションを張りません。
func NewTransactionalSource(source SnapshotSource, tx TransactionManager) SnapshotSource {
	if tx == nil {
		return source
	}
	return &transactionalSource{source: source, tx: tx}
}

func (s *transactionalSource) LoadRecords(ctx context.Context) (*Records, error) {
	var records *Records
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		loaded, err := s.source.LoadRecords(txCtx)
		if err != nil {
			return err
		}
		records = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
