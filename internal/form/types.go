package form

import "time"

// FieldType 表示字段的语义类型，决定校验时应用哪组结构化规则。
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldEmail  FieldType = "email"
	FieldTel    FieldType = "tel"
	FieldName   FieldType = "name"
	FieldAge    FieldType = "age"
	FieldIDCard FieldType = "idcard"
	FieldPhone  FieldType = "phone"
)

// Valid 判断类型是否为已知的字段类型。
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldEmail, FieldTel, FieldName, FieldAge, FieldIDCard, FieldPhone:
		return true
	}
	return false
}

// FieldSchema 描述模板中的单个输入项。
// ID 一经分配不可变；MaxLength/MinLength 为 0 表示未设置。
type FieldSchema struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required"`
	MaxLength int       `json:"maxLength,omitempty"`
	MinLength int       `json:"minLength,omitempty"`
}

// Template 表示用户自定义的表单模板。字段顺序即渲染顺序。
type Template struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Fields    []FieldSchema `json:"fields"`
	CreatedAt time.Time     `json:"createdAt"`
}

// RecordTypeTemplate 标记由自由模板（而非固定人群表单）产生的记录。
const RecordTypeTemplate = "template"

// Record 表示一次通过校验后保存的提交。
// TemplateID 仅在 Type == "template" 时出现，为弱引用：
// 模板删除后记录依旧保留，读取时按需解析。
type Record struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	TypeName   string            `json:"typeName"`
	TemplateID string            `json:"templateId,omitempty"`
	FullName   string            `json:"fullName"`
	SavedDate  string            `json:"savedDate"`
	SavedTime  string            `json:"savedTime"`
	Data       map[string]string `json:"data"`
}

// SavedDate/SavedTime 的展示格式，与保存时刻派生、同 ID 解耦。
const (
	SavedDateLayout = "2006-01-02"
	SavedTimeLayout = "15:04"
)

// Stamp 用当前时刻刷新记录的保存日期与时间。
func (r *Record) Stamp(now time.Time) {
	r.SavedDate = now.Format(SavedDateLayout)
	r.SavedTime = now.Format(SavedTimeLayout)
}
