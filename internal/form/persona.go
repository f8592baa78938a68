package form

// Persona 描述内置的固定表单（学生/员工/普通人群），不可由用户编辑。
// 固定表单自带必填字段清单，提交前只做必填检查，结构化规则由前端输入类型约束。
type Persona struct {
	Type           string
	TypeName       string
	RequiredFields []string
}

var personas = map[string]Persona{
	"student": {
		Type:           "student",
		TypeName:       "นักเรียน",
		RequiredFields: []string{"fullName", "birthDate", "gender", "email"},
	},
	"employee": {
		Type:           "employee",
		TypeName:       "พนักงาน",
		RequiredFields: []string{"fullName", "nationalId", "birthDate", "position", "startDate"},
	},
	"general": {
		Type:           "general",
		TypeName:       "บุคคลทั่วไป",
		RequiredFields: []string{"fullName", "nationalId", "birthDate"},
	},
}

// PersonaByType 按类型名查找固定表单定义。
func PersonaByType(name string) (Persona, bool) {
	p, ok := personas[name]
	return p, ok
}

// ValidateSubmission 检查固定表单的必填字段是否全部填写。
func (p Persona) ValidateSubmission(data map[string]string) error {
	for _, key := range p.RequiredFields {
		if data[key] == "" {
			return newValidationError(KindRequiredFieldMissing, "มีข้อมูลที่จำเป็นยังไม่ได้กรอก")
		}
	}
	return nil
}

// DisplayName 从表单数据派生记录的展示名。
// 所有固定表单都要求 fullName 必填，校验通过后该值必然存在。
func (p Persona) DisplayName(data map[string]string) string {
	return data["fullName"]
}
