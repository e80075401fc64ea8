package staffingv1

import (
	"errors"
	"math"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
)

func TestVacancyCountRequest_RoundTrip(t *testing.T) {
	t.Parallel()

	dept, pos := int64(12), int64(7)
	got, err := ParseVacancyCountRequest(VacancyCountRequest{DepartmentID: &dept, PositionID: &pos, DirectOnly: true}.ToStruct())
	if err != nil {
		t.Fatalf("ParseVacancyCountRequest returned error: %v", err)
	}
	if got.DepartmentID == nil || *got.DepartmentID != 12 || got.PositionID == nil || *got.PositionID != 7 || !got.DirectOnly {
		t.Fatalf("unexpected request: %+v", got)
	}

	empty := VacancyCountRequest{}.ToStruct()
	if len(empty.GetFields()) != 0 {
		t.Fatalf("expected no fields for empty request, got %v", empty.GetFields())
	}
}

func TestParseVacancyCountRequest_NullMeansAbsent(t *testing.T) {
	t.Parallel()

	got, err := ParseVacancyCountRequest(&structpb.Struct{Fields: map[string]*structpb.Value{
		FieldDepartmentID: structpb.NewNullValue(),
		FieldDirectOnly:   structpb.NewNullValue(),
	}})
	if err != nil {
		t.Fatalf("ParseVacancyCountRequest returned error: %v", err)
	}
	if got.DepartmentID != nil || got.DirectOnly {
		t.Fatalf("expected absent fields, got %+v", got)
	}
}

func TestParseVacancyCountRequest_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields map[string]*structpb.Value
	}{
		{name: "string id", fields: map[string]*structpb.Value{FieldDepartmentID: structpb.NewStringValue("12")}},
		{name: "fractional id", fields: map[string]*structpb.Value{FieldPositionID: structpb.NewNumberValue(1.5)}},
		{name: "nan id", fields: map[string]*structpb.Value{FieldPositionID: structpb.NewNumberValue(math.NaN())}},
		{name: "huge id", fields: map[string]*structpb.Value{FieldDepartmentID: structpb.NewNumberValue(1e300)}},
		{name: "numeric flag", fields: map[string]*structpb.Value{FieldDirectOnly: structpb.NewNumberValue(1)}},
		{name: "unknown field", fields: map[string]*structpb.Value{"dept": structpb.NewNumberValue(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseVacancyCountRequest(&structpb.Struct{Fields: tt.fields})
			if !errors.Is(err, ErrMalformedMessage) {
				t.Fatalf("expected ErrMalformedMessage, got %v", err)
			}
		})
	}
}

func TestVacancyCountResponse_RoundTrip(t *testing.T) {
	t.Parallel()

	want := VacancyCountResponse{Total: 5, Occupied: 1, Vacant: 4, Departments: 1, Strategy: "department_subtree"}
	got, err := ParseVacancyCountResponse(want.ToStruct())
	if err != nil {
		t.Fatalf("ParseVacancyCountResponse returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if _, err := ParseVacancyCountResponse(&structpb.Struct{}); !errors.Is(err, ErrMalformedMessage) {
		t.Fatalf("expected ErrMalformedMessage for empty response, got %v", err)
	}
}
