package form

import "formvault/internal/idgen"

// 模板构建器在保存前以内存草稿的方式编辑字段列表。
// 草稿操作不做持久化，保存时才整体校验并写入存储。

// NewField 分配一个带新 ID 的空白字段：类型默认 text，非必填，无长度限制。
func NewField() FieldSchema {
	return FieldSchema{
		ID:       idgen.Next(),
		Type:     FieldText,
		Required: false,
	}
}

// FieldPatch 描述对草稿字段的部分更新，nil 表示该属性保持不变。
type FieldPatch struct {
	Label     *string
	Type      *FieldType
	Required  *bool
	MaxLength *int
	MinLength *int
}

// UpdateField 按 ID 在草稿中就地应用补丁；ID 不存在时静默跳过。
// 字段 ID 不可变，补丁中不提供改写入口。
func UpdateField(fields []FieldSchema, id string, patch FieldPatch) {
	for i := range fields {
		if fields[i].ID != id {
			continue
		}
		if patch.Label != nil {
			fields[i].Label = *patch.Label
		}
		if patch.Type != nil {
			fields[i].Type = *patch.Type
		}
		if patch.Required != nil {
			fields[i].Required = *patch.Required
		}
		if patch.MaxLength != nil {
			fields[i].MaxLength = *patch.MaxLength
		}
		if patch.MinLength != nil {
			fields[i].MinLength = *patch.MinLength
		}
		return
	}
}

// RemoveField 按 ID 从草稿中移除字段；ID 不存在时为无操作。
func RemoveField(fields []FieldSchema, id string) []FieldSchema {
	out := fields[:0]
	for _, field := range fields {
		if field.ID != id {
			out = append(out, field)
		}
	}
	return out
}
