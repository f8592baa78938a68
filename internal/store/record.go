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

// RecordsKey 是记录集合在键值存储中的固定键。
const RecordsKey = "saved_records"

// RecordStore 持久化已保存的提交记录，最新在前。
type RecordStore struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *slog.Logger
}

// NewRecordStore 构造记录存储。
func NewRecordStore(store kv.Store, logger *slog.Logger) *RecordStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStore{kv: store, logger: logger}
}

// Save 保存一条新记录：分配 ID、以当前时刻派生保存日期/时间、
// 插入列表头部并整体持久化。返回带 ID 的完整记录。
func (s *RecordStore) Save(ctx context.Context, record form.Record) (form.Record, error) {
	record.ID = idgen.Next()
	record.Stamp(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	records = append([]form.Record{record}, records...)
	if err := s.persist(ctx, records); err != nil {
		return form.Record{}, err
	}
	return record, nil
}

// List 返回存储顺序（最新在前）的全部记录。
// 底层缺失或损坏时记录日志并返回空列表，从不失败。
func (s *RecordStore) List(ctx context.Context) []form.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// GetByID 线性扫描按 ID 查找记录。
func (s *RecordStore) GetByID(ctx context.Context, id string) (form.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.load(ctx) {
		if record.ID == id {
			return record, true
		}
	}
	return form.Record{}, false
}

// Update 替换指定记录的数据并刷新保存日期/时间；
// ID、类型、类型名、模板引用与展示名保持不变。ID 不存在时为无操作。
func (s *RecordStore) Update(ctx context.Context, id string, data map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	changed := false
	for i := range records {
		if records[i].ID != id {
			continue
		}
		records[i].Data = data
		records[i].Stamp(time.Now())
		changed = true
		break
	}
	if !changed {
		return nil
	}
	return s.persist(ctx, records)
}

// Delete 按 ID 删除记录，幂等：ID 不存在时为无操作。
func (s *RecordStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	remaining := records[:0]
	for _, record := range records {
		if record.ID != id {
			remaining = append(remaining, record)
		}
	}
	return s.persist(ctx, remaining)
}

// CountByTemplate 统计引用给定模板的记录数，供模板列表展示使用次数。
func (s *RecordStore) CountByTemplate(ctx context.Context, templateID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range s.load(ctx) {
		if record.TemplateID == templateID {
			count++
		}
	}
	return count
}

func (s *RecordStore) load(ctx context.Context) []form.Record {
	raw, err := s.kv.Get(ctx, RecordsKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Error("load records failed", slog.Any("error", err))
		}
		return []form.Record{}
	}

	var records []form.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Error("decode records failed, treating as empty", slog.Any("error", err))
		return []form.Record{}
	}
	return records
}

func (s *RecordStore) persist(ctx context.Context, records []form.Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, RecordsKey, raw)
}
