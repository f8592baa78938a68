package store

import (
	"context"
	"regexp"
	"testing"

	"formvault/internal/form"
	"formvault/internal/kv"
)

func newRecord(templateID string, data map[string]string) form.Record {
	return form.Record{
		Type:       form.RecordTypeTemplate,
		TypeName:   "Survey",
		TemplateID: templateID,
		FullName:   "สมชาย ใจดี",
		Data:       data,
	}
}

func TestRecordSaveAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemoryStore(), nil)

	saved, err := s.Save(ctx, newRecord("tpl-1", map[string]string{"f1": "15"}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("saved record missing id")
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(saved.SavedDate) {
		t.Fatalf("savedDate not in YYYY-MM-DD form: %q", saved.SavedDate)
	}
	if !regexp.MustCompile(`^\d{2}:\d{2}$`).MatchString(saved.SavedTime) {
		t.Fatalf("savedTime not in HH:MM form: %q", saved.SavedTime)
	}
	if saved.Data["f1"] != "15" {
		t.Fatalf("data not preserved: %+v", saved.Data)
	}
}

func TestRecordListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemoryStore(), nil)

	first, err := s.Save(ctx, newRecord("tpl-1", map[string]string{"f1": "a"}))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := s.Save(ctx, newRecord("tpl-1", map[string]string{"f1": "b"}))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}

	records := s.List(ctx)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != second.ID || records[1].ID != first.ID {
		t.Fatal("saves must prepend newest first")
	}
	if !(second.ID > first.ID) {
		t.Fatalf("ids must sort by creation order: %q vs %q", first.ID, second.ID)
	}
}

func TestRecordGetByID(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemoryStore(), nil)

	saved, err := s.Save(ctx, newRecord("tpl-1", map[string]string{"f1": "x"}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := s.GetByID(ctx, saved.ID)
	if !ok || got.Data["f1"] != "x" {
		t.Fatalf("get failed: ok=%v got=%+v", ok, got)
	}
	if _, ok := s.GetByID(ctx, "missing"); ok {
		t.Fatal("missing id must not resolve")
	}
}

func TestRecordUpdatePreservesIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemoryStore(), nil)

	saved, err := s.Save(ctx, newRecord("tpl-1", map[string]string{"f1": "old"}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Update(ctx, saved.ID, map[string]string{"f1": "new"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, ok := s.GetByID(ctx, saved.ID)
	if !ok {
		t.Fatal("record vanished after update")
	}
	if got.ID != saved.ID || got.Type != saved.Type || got.TemplateID != saved.TemplateID {
		t.Fatalf("identity must survive update: %+v", got)
	}
	if got.TypeName != saved.TypeName || got.FullName != saved.FullName {
		t.Fatalf("display attributes must survive update: %+v", got)
	}
	if got.Data["f1"] != "new" {
		t.Fatalf("data not replaced: %+v", got.Data)
	}
	if got.SavedDate == "" || got.SavedTime == "" {
		t.Fatal("saved date/time must be refreshed, not cleared")
	}

	// 不存在的 ID：无操作，集合不变。
	if err := s.Update(ctx, "missing", map[string]string{"x": "y"}); err != nil {
		t.Fatalf("update missing id: %v", err)
	}
	if got := s.List(ctx); len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
}

func TestRecordDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemoryStore(), nil)

	saved, err := s.Save(ctx, newRecord("tpl-1", map[string]string{"f1": "x"}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if got := s.List(ctx); len(got) != 0 {
		t.Fatalf("expected empty store, got %d records", len(got))
	}
}

func TestRecordCountByTemplate(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemoryStore(), nil)

	for i := 0; i < 3; i++ {
		if _, err := s.Save(ctx, newRecord("tpl-1", map[string]string{"f1": "v"})); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if _, err := s.Save(ctx, newRecord("tpl-2", map[string]string{"f1": "v"})); err != nil {
		t.Fatalf("save: %v", err)
	}
	persona := form.Record{Type: "student", TypeName: "นักเรียน", FullName: "x", Data: map[string]string{}}
	if _, err := s.Save(ctx, persona); err != nil {
		t.Fatalf("save persona: %v", err)
	}

	if got := s.CountByTemplate(ctx, "tpl-1"); got != 3 {
		t.Fatalf("expected 3 uses of tpl-1, got %d", got)
	}
	if got := s.CountByTemplate(ctx, "tpl-2"); got != 1 {
		t.Fatalf("expected 1 use of tpl-2, got %d", got)
	}
	if got := s.CountByTemplate(ctx, "deleted-tpl"); got != 0 {
		t.Fatalf("expected 0 uses, got %d", got)
	}
}

func TestRecordListCorruptJSON(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	if err := mem.Set(ctx, RecordsKey, []byte("[broken")); err != nil {
		t.Fatalf("seed corrupt payload: %v", err)
	}

	s := NewRecordStore(mem, nil)
	if got := s.List(ctx); got == nil || len(got) != 0 {
		t.Fatalf("corrupt collection must degrade to empty slice, got %v", got)
	}
}
