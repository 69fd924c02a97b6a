package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/tenantvault/pkg/rule"
)

// grantReq 模拟授权请求体的校验规则.
type grantReq struct {
	UserID   uint   `json:"user_id"  rule:"required,min=1"`
	TenantID uint   `json:"tenant_id" rule:"required,min=1"`
	Note     string `json:"note"     rule:"omitempty,max=16"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	if rule.Engine() == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	valid := grantReq{UserID: 7, TenantID: 42}
	if err := rule.ValidateStruct(valid); err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 缺少 user_id
	if err := rule.ValidateStruct(grantReq{TenantID: 42}); err == nil {
		t.Error("Expected error for missing user_id, got nil")
	}

	// note 超长
	if err := rule.ValidateStruct(grantReq{UserID: 7, TenantID: 42, Note: "this note is definitely too long"}); err == nil {
		t.Error("Expected error for oversized note, got nil")
	}
}

// TestErrors 测试 Errors 将校验错误解析为字段字典，键使用 json tag.
func TestErrors(t *testing.T) {
	err := rule.ValidateStruct(grantReq{Note: "this note is definitely too long"})
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	fields := rule.Errors(err)
	if fields == nil {
		t.Fatal("Errors() returned nil for a validation error")
	}

	if _, ok := fields["user_id"]; !ok {
		t.Errorf("Expected user_id in field errors, got %v", fields)
	}

	if got := fields["note"]; got != "max=16" {
		t.Errorf("Expected note error max=16, got %q", got)
	}

	// 非校验类错误返回 nil
	if got := rule.Errors(rule.ValidateVar(1, "min=1")); got != nil {
		t.Errorf("Expected nil for passing validation, got %v", got)
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	if err := rule.ValidateVar(uint(42), "required,min=1"); err != nil {
		t.Errorf("Expected no error for valid id, got %v", err)
	}

	if err := rule.ValidateVar(uint(0), "required,min=1"); err == nil {
		t.Error("Expected error for zero id, got nil")
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	err := rule.RegisterValidation("tenant_slug", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		for _, r := range s {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				return false
			}
		}

		return s != ""
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	if err := rule.ValidateVar("acme-corp", "tenant_slug"); err != nil {
		t.Errorf("Expected no error for valid slug, got %v", err)
	}

	if err := rule.ValidateVar("Acme Corp", "tenant_slug"); err == nil {
		t.Error("Expected error for invalid slug, got nil")
	}
}

// TestRegisterAlias 测试注册别名.
func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("entity_id", "required,min=1")

	if err := rule.ValidateVar(uint(3), "entity_id"); err != nil {
		t.Errorf("Expected no error for valid id with alias, got %v", err)
	}

	if err := rule.ValidateVar(uint(0), "entity_id"); err == nil {
		t.Error("Expected error for zero id with alias, got nil")
	}
}
