package singleton

import (
	"encoding/json"
	"testing"

	"github.com/kbukum/accountkit/account"
	"github.com/kbukum/accountkit/errors"
)

type registryEnvelope struct {
	Registry AccountRegistry `json:"registry"`
}

func TestAccountRegistryJSONRoundTrip(t *testing.T) {
	before := Instance.Account()

	data, err := json.Marshal(registryEnvelope{Registry: Instance})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"registry":"INSTANCE"}` {
		t.Errorf("unexpected encoding %s", data)
	}

	var decoded registryEnvelope
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Registry != Instance {
		t.Errorf("expected Instance, got %v", decoded.Registry)
	}
	if decoded.Registry.Account() != before {
		t.Error("decoded registry value must own the same account")
	}
	if GetEnumerated() != before {
		t.Error("GetEnumerated must return the registry account")
	}
}

func TestAccountRegistryRejectsUnknownToken(t *testing.T) {
	var decoded registryEnvelope
	err := json.Unmarshal([]byte(`{"registry":"OTHER"}`), &decoded)
	if err == nil {
		t.Fatal("expected error for unknown token")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestEnumeratedJSONRoundTrip(t *testing.T) {
	p := NewEnumerated(account.New)
	before := p.Instance()
	before.Deposit(250)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"INSTANCE"` {
		t.Errorf("unexpected encoding %s", data)
	}

	if err := json.Unmarshal(data, p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Instance() != before {
		t.Error("decoding must keep the held instance")
	}
	if p.Instance().Balance() != account.DefaultBalance+250 {
		t.Errorf("expected balance to survive, got %v", p.Instance().Balance())
	}
}

func TestEnumeratedUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name   string
		target *Enumerated[*account.Account]
		data   string
	}{
		{"unknown token", NewEnumerated(account.New), `"OTHER"`},
		{"not a string", NewEnumerated(account.New), `42`},
		{"empty target", &Enumerated[*account.Account]{}, `"INSTANCE"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.data), tt.target)
			if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}
