package snapshotfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
)

type document struct {
	Departments []departmentDTO `yaml:"departments"`
	Positions   []positionDTO   `yaml:"positions"`
	Bindings    []bindingDTO    `yaml:"bindings"`
	Employees   []employeeDTO   `yaml:"employees"`
	Relations   []relationDTO   `yaml:"relations"`
	Links       []linkDTO       `yaml:"links"`
}

type departmentDTO struct {
	ID                 int64  `yaml:"id"`
	Name               string `yaml:"name"`
	ParentDepartmentID *int64 `yaml:"parent_department_id"`
	ParentPositionID   *int64 `yaml:"parent_position_id"`
	Deleted            bool   `yaml:"deleted"`
}

type positionDTO struct {
	ID      int64  `yaml:"id"`
	Name    string `yaml:"name"`
	Deleted bool   `yaml:"deleted"`
}

type bindingDTO struct {
	PositionID   int64 `yaml:"position_id"`
	DepartmentID int64 `yaml:"department_id"`
	VacancyTotal int   `yaml:"vacancy_total"`
	Deleted      bool  `yaml:"deleted"`
}

type employeeDTO struct {
	ID           int64  `yaml:"id"`
	FullName     string `yaml:"full_name"`
	PositionID   int64  `yaml:"position_id"`
	DepartmentID int64  `yaml:"department_id"`
	Deleted      bool   `yaml:"deleted"`
}

type relationDTO struct {
	ParentPositionID   int64 `yaml:"parent_position_id"`
	ParentDepartmentID int64 `yaml:"parent_department_id"`
	ChildPositionID    int64 `yaml:"child_position_id"`
	ChildDepartmentID  int64 `yaml:"child_department_id"`
	Deleted            bool  `yaml:"deleted"`
}

type linkDTO struct {
	PositionID       int64 `yaml:"position_id"`
	ParentPositionID int64 `yaml:"parent_position_id"`
	DepartmentID     int64 `yaml:"department_id"`
	Deleted          bool  `yaml:"deleted"`
}

// Source は YAML ファイルからレコードを読み込む SnapshotSource です。
type Source struct {
	path string
}

// NewSource は Source を生成します。
func NewSource(path string) *Source {
	return &Source{path: path}
}

var _ staffing.SnapshotSource = (*Source)(nil)

// LoadRecords は呼び出しのたびにファイルを読み直します。
func (s *Source) LoadRecords(ctx context.Context) (*staffing.Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("snapshotfile: open %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("snapshotfile: %s: %w", s.path, err)
	}
	return records, nil
}

// Decode は YAML 文書をレコードに変換します。未知のキーはエラーにします。
func Decode(r io.Reader) (*staffing.Records, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &staffing.Records{}, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return doc.toRecords(), nil
}

func (d document) toRecords() *staffing.Records {
	records := &staffing.Records{
		Departments: make([]staffing.Department, 0, len(d.Departments)),
		Positions:   make([]staffing.Position, 0, len(d.Positions)),
		Bindings:    make([]staffing.Binding, 0, len(d.Bindings)),
		Employees:   make([]staffing.Employee, 0, len(d.Employees)),
		Relations:   make([]staffing.PositionRelation, 0, len(d.Relations)),
		Links:       make([]staffing.PositionLink, 0, len(d.Links)),
	}

	for _, v := range d.Departments {
		records.Departments = append(records.Departments, staffing.Department{
			ID:                 v.ID,
			Name:               v.Name,
			ParentDepartmentID: v.ParentDepartmentID,
			ParentPositionID:   v.ParentPositionID,
			Deleted:            v.Deleted,
		})
	}
	for _, v := range d.Positions {
		records.Positions = append(records.Positions, staffing.Position{ID: v.ID, Name: v.Name, Deleted: v.Deleted})
	}
	for _, v := range d.Bindings {
		records.Bindings = append(records.Bindings, staffing.Binding(v))
	}
	for _, v := range d.Employees {
		records.Employees = append(records.Employees, staffing.Employee{
			ID:           v.ID,
			PositionID:   v.PositionID,
			DepartmentID: v.DepartmentID,
			FullName:     v.FullName,
			Deleted:      v.Deleted,
		})
	}
	for _, v := range d.Relations {
		records.Relations = append(records.Relations, staffing.PositionRelation(v))
	}
	for _, v := range d.Links {
		records.Links = append(records.Links, staffing.PositionLink(v))
	}

	return records
}
