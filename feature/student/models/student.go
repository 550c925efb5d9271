package models

// TableStudents is the table backing Student.
const TableStudents = "students"

// Student is a stored student row. (name, age, city) is not unique:
// duplicate rows can exist and are reported as ambiguous on import.
type Student struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;size:100;not null;index:idx_students_natural_key,priority:1" json:"name"`
	Age  int    `gorm:"column:age;not null;default:0;index:idx_students_natural_key,priority:2" json:"age"`
	City string `gorm:"column:city;size:100;not null;index:idx_students_natural_key,priority:3" json:"city"`
}

// TableName implements gorm's tabler interface.
func (Student) TableName() string {
	return TableStudents
}

// RequiredColumns lists the columns an existing students table must have.
var RequiredColumns = []string{"id", "name", "age", "city"}
