// Package store 实现模板与记录两套集合的持久化。
//
// 两套集合各自独占一个固定键，整集合读-改-写。互斥量保证同一存储内的
// 读改写序列不被交错（单写者纪律），避免共享后端下的丢失更新。
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"formvault/internal/form"
	"formvault/internal/idgen"
	"formvault/internal/kv"
)

// TemplatesKey 是模板集合在键值存储中的固定键。
const TemplatesKey = "custom_templates"

// TemplateStore 持久化用户自定义模板，最新创建的在最前。
type TemplateStore struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *slog.Logger
}

// NewTemplateStore 构造模板存储。
func NewTemplateStore(store kv.Store, logger *slog.Logger) *TemplateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateStore{kv: store, logger: logger}
}

// Save 校验后保存新模板：分配 ID、记录创建时间、插入列表头部并整体持久化。
// 校验失败返回 *form.ValidationError，不产生部分保存。
func (s *TemplateStore) Save(ctx context.Context, name string, fields []form.FieldSchema) (form.Template, error) {
	if err := form.ValidateTemplate(name, fields); err != nil {
		return form.Template{}, err
	}

	template := form.Template{
		ID:        idgen.Next(),
		Name:      name,
		Fields:    fields,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	templates := s.load(ctx)
	templates = append([]form.Template{template}, templates...)
	if err := s.persist(ctx, templates); err != nil {
		return form.Template{}, err
	}
	return template, nil
}

// List 返回存储顺序（最新在前）的全部模板。
// 读失败记录日志并降级为空列表，从不向调用方抛错。
func (s *TemplateStore) List(ctx context.Context) []form.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get 按 ID 查找模板。
func (s *TemplateStore) Get(ctx context.Context, id string) (form.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, template := range s.load(ctx) {
		if template.ID == id {
			return template, true
		}
	}
	return form.Template{}, false
}

// Replace 整体替换模板的名称与字段（编辑即重存，不提供字段级补丁）。
// ID 与创建时间保持不变。模板不存在时返回 false，不落盘。
func (s *TemplateStore) Replace(ctx context.Context, id, name string, fields []form.FieldSchema) (form.Template, bool, error) {
	if err := form.ValidateTemplate(name, fields); err != nil {
		return form.Template{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	templates := s.load(ctx)
	for i := range templates {
		if templates[i].ID != id {
			continue
		}
		templates[i].Name = name
		templates[i].Fields = fields
		if err := s.persist(ctx, templates); err != nil {
			return form.Template{}, false, err
		}
		return templates[i], true, nil
	}
	return form.Template{}, false, nil
}

// Delete 按 ID 删除模板，幂等：ID 不存在时为无操作。
// 删除不级联：引用该模板的记录原样保留（弱引用容忍悬空）。
func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates := s.load(ctx)
	remaining := templates[:0]
	for _, template := range templates {
		if template.ID != id {
			remaining = append(remaining, template)
		}
	}
	return s.persist(ctx, remaining)
}

func (s *TemplateStore) load(ctx context.Context) []form.Template {
	raw, err := s.kv.Get(ctx, TemplatesKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Error("load templates failed", slog.Any("error", err))
		}
		return []form.Template{}
	}

	var templates []form.Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		s.logger.Error("decode templates failed, treating as empty", slog.Any("error", err))
		return []form.Template{}
	}
	return templates
}

func (s *TemplateStore) persist(ctx context.Context, templates []form.Template) error {
	raw, err := json.Marshal(templates)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, TemplatesKey, raw)
}
