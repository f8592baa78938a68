package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formvault/internal/form"
	"formvault/internal/store"
)

// RecordHandler 负责记录的提交、历史查看与增删改。
type RecordHandler struct {
	templates *store.TemplateStore
	records   *store.RecordStore
}

// NewRecordHandler 构造 RecordHandler。
func NewRecordHandler(templates *store.TemplateStore, records *store.RecordStore) *RecordHandler {
	return &RecordHandler{
		templates: templates,
		records:   records,
	}
}

type submitRequest struct {
	Data map[string]string `json:"data" binding:"required"`
}

// 自由模板记录在首字段为空时的展示名占位。
const unnamedRecord = "ไม่ระบุ"

// POST /v1/records/template/:id（分享链接的提交走同一处理器）
// 按模板字段顺序校验，首个失败即拒绝（fail-fast），不产生部分保存。
func (h *RecordHandler) SubmitTemplate(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	template, ok := h.templates.Get(ctx, c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}

	if err := form.ValidateAll(template.Fields, req.Data); err != nil {
		replyStoreError(c, err)
		return
	}

	// 展示名取首字段的值（首字段定义了记录"叫什么"）。
	fullName := unnamedRecord
	if len(template.Fields) > 0 {
		if value := req.Data[template.Fields[0].ID]; value != "" {
			fullName = value
		}
	}

	record, err := h.records.Save(ctx, form.Record{
		Type:       form.RecordTypeTemplate,
		TypeName:   template.Name,
		TemplateID: template.ID,
		FullName:   fullName,
		Data:       req.Data,
	})
	if err != nil {
		Internal(c, "failed to save record")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// POST /v1/records/persona/:persona
// 固定表单（student/employee/general）只做必填检查后整体保存。
func (h *RecordHandler) SubmitPersona(c *gin.Context) {
	persona, ok := form.PersonaByType(c.Param("persona"))
	if !ok {
		NotFound(c, "unknown persona")
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := persona.ValidateSubmission(req.Data); err != nil {
		replyStoreError(c, err)
		return
	}

	record, err := h.records.Save(c.Request.Context(), form.Record{
		Type:     persona.Type,
		TypeName: persona.TypeName,
		FullName: persona.DisplayName(req.Data),
		Data:     req.Data,
	})
	if err != nil {
		Internal(c, "failed to save record")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GET /v1/records
// 历史视图：全部记录，存储顺序（最新在前）。读失败降级为空列表。
func (h *RecordHandler) ListRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.records.List(c.Request.Context()))
}

// GET /v1/records/:id
func (h *RecordHandler) GetRecord(c *gin.Context) {
	record, ok := h.records.GetByID(c.Request.Context(), c.Param("id"))
	if !ok {
		NotFound(c, "record not found")
		return
	}
	c.JSON(http.StatusOK, record)
}

// PUT /v1/records/:id
// 替换数据并刷新保存日期/时间；身份字段（id/type/typeName/templateId/fullName）不变。
// 若记录源自模板且模板仍存在，更新前按当前模板重新校验；模板已删除时
// 跳过校验直接替换（弱引用容忍悬空，旧记录不因模板变动而失效）。
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	record, ok := h.records.GetByID(ctx, id)
	if !ok {
		NotFound(c, "record not found")
		return
	}

	if record.Type == form.RecordTypeTemplate && record.TemplateID != "" {
		if template, ok := h.templates.Get(ctx, record.TemplateID); ok {
			if err := form.ValidateAll(template.Fields, req.Data); err != nil {
				replyStoreError(c, err)
				return
			}
		}
	}

	if err := h.records.Update(ctx, id, req.Data); err != nil {
		Internal(c, "failed to update record")
		return
	}

	updated, _ := h.records.GetByID(ctx, id)
	c.JSON(http.StatusOK, updated)
}

// DELETE /v1/records/:id
// 幂等删除。
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	if err := h.records.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Internal(c, "failed to delete record")
		return
	}
	c.Status(http.StatusNoContent)
}
