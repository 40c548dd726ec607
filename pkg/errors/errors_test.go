package errors

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		in   error
		want error
	}{
		{nil, nil},
		{gorm.ErrRecordNotFound, ErrNotFound},
		{fmt.Errorf("查询: %w", gorm.ErrRecordNotFound), ErrNotFound},
		{gorm.ErrDuplicatedKey, ErrDuplicate},
		{other, other},
	}
	for _, tt := range tests {
		if got := Translate(tt.in); got != tt.want {
			t.Errorf("Translate(%v) 期望 %v，实际 %v", tt.in, tt.want, got)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(gorm.ErrRecordNotFound) || !IsNotFound(ErrNotFound) {
		t.Error("期望识别为记录不存在")
	}
	if IsNotFound(errors.New("x")) {
		t.Error("普通错误不应识别为记录不存在")
	}
}
