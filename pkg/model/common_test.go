package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewBaseModel(t *testing.T) {
	m := NewBaseModel()

	if m.ID == uuid.Nil {
		t.Error("ID 不应为空")
	}
	if m.CreatedAt.IsZero() || m.UpdatedAt.IsZero() {
		t.Error("时间戳不应为零值")
	}
	if !m.CreatedAt.Equal(m.UpdatedAt) {
		t.Error("新建模型的创建与更新时间应一致")
	}
	if m.DeletedAt != nil {
		t.Error("新建模型不应有删除时间")
	}
}

func TestJSONMap(t *testing.T) {
	m := JSONMap{"max_consecutive": 6, "zero_policy": "ban"}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var decoded JSONMap
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if decoded["zero_policy"] != "ban" {
		t.Errorf("zero_policy = %v, 期望 ban", decoded["zero_policy"])
	}
}
