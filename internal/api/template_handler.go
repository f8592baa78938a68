package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"formvault/internal/form"
	"formvault/internal/idgen"
	"formvault/internal/share"
	"formvault/internal/store"
)

// TemplateHandler 负责模板构建器相关的 API。
type TemplateHandler struct {
	templates *store.TemplateStore
	records   *store.RecordStore
	share     *share.Generator
}

// NewTemplateHandler 构造 TemplateHandler。
func NewTemplateHandler(templates *store.TemplateStore, records *store.RecordStore, shareGen *share.Generator) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		records:   records,
		share:     shareGen,
	}
}

type fieldRequest struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	Required  bool   `json:"required"`
	MaxLength int    `json:"maxLength"`
	MinLength int    `json:"minLength"`
}

type templateRequest struct {
	Name   string         `json:"name" binding:"required"`
	Fields []fieldRequest `json:"fields"`
}

type templateListItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FieldCount int       `json:"field_count"`
	UsageCount int       `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// 请求中的字段转为内部 schema；未带 ID 的字段分配新 ID（ID 一经分配不可变）。
func (r fieldRequest) toSchema() (form.FieldSchema, bool) {
	fieldType := form.FieldType(r.Type)
	if r.Type == "" {
		fieldType = form.FieldText
	}
	if !fieldType.Valid() {
		return form.FieldSchema{}, false
	}

	id := r.ID
	if id == "" {
		id = idgen.Next()
	}
	return form.FieldSchema{
		ID:        id,
		Label:     r.Label,
		Type:      fieldType,
		Required:  r.Required,
		MaxLength: r.MaxLength,
		MinLength: r.MinLength,
	}, true
}

func fieldsFromRequest(c *gin.Context, reqs []fieldRequest) ([]form.FieldSchema, bool) {
	fields := make([]form.FieldSchema, 0, len(reqs))
	for _, req := range reqs {
		schema, ok := req.toSchema()
		if !ok {
			BadRequest(c, "invalid field type: "+req.Type)
			return nil, false
		}
		fields = append(fields, schema)
	}
	return fields, true
}

// POST /v1/templates
// 创建模板：名称非空、至少一个字段、字段标签齐全，否则 400 并附本地化文案。
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	fields, ok := fieldsFromRequest(c, req.Fields)
	if !ok {
		return
	}

	template, err := h.templates.Save(c.Request.Context(), req.Name, fields)
	if err != nil {
		replyStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

// GET /v1/templates
// 列表：存储顺序（最新在前），附每个模板被记录引用的次数。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	ctx := c.Request.Context()

	templates := h.templates.List(ctx)
	items := make([]templateListItem, 0, len(templates))
	for _, t := range templates {
		items = append(items, templateListItem{
			ID:         t.ID,
			Name:       t.Name,
			FieldCount: len(t.Fields),
			UsageCount: h.records.CountByTemplate(ctx, t.ID),
			CreatedAt:  t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

// GET /v1/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	template, ok := h.templates.Get(c.Request.Context(), c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, template)
}

// PUT /v1/templates/:id
// 编辑即整体重存：替换名称与全部字段，不提供字段级补丁。
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	fields, ok := fieldsFromRequest(c, req.Fields)
	if !ok {
		return
	}

	template, found, err := h.templates.Replace(c.Request.Context(), c.Param("id"), req.Name, fields)
	if err != nil {
		replyStoreError(c, err)
		return
	}
	if !found {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, template)
}

// DELETE /v1/templates/:id
// 幂等删除；不级联删除引用该模板的记录。
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Internal(c, "failed to delete template")
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /v1/templates/:id/share-link
// 纯派生：不检查模板是否存在，也不做任何访问控制或签名。
func (h *TemplateHandler) ShareLink(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": h.share.Link(c.Param("id"))})
}
