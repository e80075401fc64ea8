package staffingv1

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// リクエストとレスポンスのフィールド名です。
const (
	FieldDepartmentID = "department_id"
	FieldPositionID   = "position_id"
	FieldDirectOnly   = "direct_only"

	FieldTotal       = "total"
	FieldOccupied    = "occupied"
	FieldVacant      = "vacant"
	FieldDepartments = "departments"
	FieldStrategy    = "strategy"
)

// ErrMalformedMessage は Struct の形が期待と異なる場合のエラーです。
var ErrMalformedMessage = errors.New("staffingv1: malformed message")

// VacancyCountRequest は GetVacancyCount / GetDirectVacancyCount の入力です。
type VacancyCountRequest struct {
	DepartmentID *int64
	PositionID   *int64
	DirectOnly   bool
}

// VacancyCountResponse は集計結果です。
type VacancyCountResponse struct {
	Total       int64
	Occupied    int64
	Vacant      int64
	Departments int64
	Strategy    string
}

// ToStruct は Struct に変換します。nil の ID は省略します。
func (r VacancyCountRequest) ToStruct() *structpb.Struct {
	fields := map[string]*structpb.Value{}
	if r.DepartmentID != nil {
		fields[FieldDepartmentID] = structpb.NewNumberValue(float64(*r.DepartmentID))
	}
	if r.PositionID != nil {
		fields[FieldPositionID] = structpb.NewNumberValue(float64(*r.PositionID))
	}
	if r.DirectOnly {
		fields[FieldDirectOnly] = structpb.NewBoolValue(true)
	}
	return &structpb.Struct{Fields: fields}
}

// ParseVacancyCountRequest は Struct を検証して取り出します。未知のフィールドはエラーです。
func ParseVacancyCountRequest(s *structpb.Struct) (VacancyCountRequest, error) {
	var req VacancyCountRequest
	for name, v := range s.GetFields() {
		switch name {
		case FieldDepartmentID:
			id, err := optionalInt(name, v)
			if err != nil {
				return VacancyCountRequest{}, err
			}
			req.DepartmentID = id
		case FieldPositionID:
			id, err := optionalInt(name, v)
			if err != nil {
				return VacancyCountRequest{}, err
			}
			req.PositionID = id
		case FieldDirectOnly:
			switch kind := v.GetKind().(type) {
			case *structpb.Value_BoolValue:
				req.DirectOnly = kind.BoolValue
			case *structpb.Value_NullValue:
			default:
				return VacancyCountRequest{}, fmt.Errorf("%w: %s must be a bool", ErrMalformedMessage, name)
			}
		default:
			return VacancyCountRequest{}, fmt.Errorf("%w: unknown field %q", ErrMalformedMessage, name)
		}
	}
	return req, nil
}

// ToStruct は Struct に変換します。
func (r VacancyCountResponse) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldTotal:       structpb.NewNumberValue(float64(r.Total)),
		FieldOccupied:    structpb.NewNumberValue(float64(r.Occupied)),
		FieldVacant:      structpb.NewNumberValue(float64(r.Vacant)),
		FieldDepartments: structpb.NewNumberValue(float64(r.Departments)),
		FieldStrategy:    structpb.NewStringValue(r.Strategy),
	}}
}

// ParseVacancyCountResponse はレスポンスの Struct を取り出します。
func ParseVacancyCountResponse(s *structpb.Struct) (VacancyCountResponse, error) {
	var (
		resp VacancyCountResponse
		err  error
	)
	fields := s.GetFields()
	for name, dst := range map[string]*int64{
		FieldTotal:       &resp.Total,
		FieldOccupied:    &resp.Occupied,
		FieldVacant:      &resp.Vacant,
		FieldDepartments: &resp.Departments,
	} {
		v, ok := fields[name]
		if !ok {
			return VacancyCountResponse{}, fmt.Errorf("%w: missing %s", ErrMalformedMessage, name)
		}
		if *dst, err = toInt(name, v); err != nil {
			return VacancyCountResponse{}, err
		}
	}
	resp.Strategy = fields[FieldStrategy].GetStringValue()
	return resp, nil
}

func optionalInt(name string, v *structpb.Value) (*int64, error) {
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, nil
	}
	n, err := toInt(name, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func toInt(name string, v *structpb.Value) (int64, error) {
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", ErrMalformedMessage, name)
	}
	f := num.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrMalformedMessage, name, f)
	}
	return int64(f), nil
}
