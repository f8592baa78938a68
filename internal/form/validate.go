package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	namePattern   = regexp.MustCompile(`^[ก-๙a-zA-Z\s]+$`)
	idCardPattern = regexp.MustCompile(`^[0-9]{13}$`)
	phonePattern  = regexp.MustCompile(`^0[0-9]{9}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telPattern    = regexp.MustCompile(`^[0-9+\-\s()]*$`)
)

// Validate 按固定优先级校验单个字段的原始输入：
// 必填 → 最大长度 → 类型规则（仅在值非空时评估）。
// 通过返回 nil，否则返回首个违反规则的 *ValidationError。
// 校验是纯函数：同步执行，不修改字段也不修改值。
func Validate(field FieldSchema, value string) error {
	if field.Required && strings.TrimSpace(value) == "" {
		return newValidationError(KindRequiredFieldMissing,
			fmt.Sprintf("%s เป็นข้อมูลที่จำเป็น", field.Label))
	}

	if field.MaxLength > 0 && len([]rune(value)) > field.MaxLength {
		return newValidationError(KindLengthExceeded,
			fmt.Sprintf("%s ต้องไม่เกิน %d ตัวอักษร", field.Label, field.MaxLength))
	}

	// 空且非必填的值总是通过类型规则。
	if value == "" {
		return nil
	}

	switch field.Type {
	case FieldName:
		if !namePattern.MatchString(value) {
			return newValidationError(KindPatternMismatch,
				fmt.Sprintf("%s ต้องเป็นตัวอักษรไทยหรืออังกฤษเท่านั้น", field.Label))
		}
	case FieldAge:
		age, err := strconv.Atoi(value)
		if err != nil || age < 1 || age > 120 {
			return newValidationError(KindRangeViolation,
				fmt.Sprintf("%s ต้องเป็นตัวเลข 1-120", field.Label))
		}
	case FieldIDCard:
		if !idCardPattern.MatchString(value) {
			return newValidationError(KindPatternMismatch,
				fmt.Sprintf("%s ต้องเป็นเลขบัตรประชาชน 13 หลัก", field.Label))
		}
	case FieldPhone:
		if !phonePattern.MatchString(value) {
			return newValidationError(KindPatternMismatch,
				fmt.Sprintf("%s ต้องเป็นเบอร์โทรศัพท์ 10 หลัก เริ่มด้วย 0", field.Label))
		}
	case FieldNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return newValidationError(KindPatternMismatch,
				fmt.Sprintf("%s ต้องเป็นตัวเลขเท่านั้น", field.Label))
		}
	case FieldEmail:
		if !emailPattern.MatchString(value) {
			return newValidationError(KindPatternMismatch,
				fmt.Sprintf("%s ต้องเป็นรูปแบบอีเมลที่ถูกต้อง", field.Label))
		}
	case FieldTel:
		if !telPattern.MatchString(value) {
			return newValidationError(KindPatternMismatch,
				fmt.Sprintf("%s ต้องเป็นเบอร์โทรศัพท์ที่ถูกต้อง", field.Label))
		}
	}

	return nil
}

// ValidateAll 按模板字段顺序逐个校验，返回首个失败（fail-fast）。
// 一次提交只向用户呈现一条错误信息，这是产品层面的取舍。
func ValidateAll(fields []FieldSchema, data map[string]string) error {
	for _, field := range fields {
		if err := Validate(field, data[field.ID]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTemplate 校验模板保存前的约束：名称非空、至少一个字段、
// 每个字段的标签非空。
func ValidateTemplate(name string, fields []FieldSchema) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError(KindEmptyName, "กรุณาใส่ชื่อเทมเพลต")
	}
	if len(fields) == 0 {
		return newValidationError(KindNoFields, "กรุณาเพิ่มฟิลด์อย่างน้อย 1 ฟิลด์")
	}
	for _, field := range fields {
		if strings.TrimSpace(field.Label) == "" {
			return newValidationError(KindEmptyFieldLabel, "กรุณาใส่ชื่อฟิลด์ให้ครบทุกฟิลด์")
		}
	}
	return nil
}
