package cmd

import "testing"

func TestGetSecretFromEnv(t *testing.T) {
	t.Setenv(EnvSecret, "from-env")

	secret, err := GetSecret("unused: ")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if string(secret) != "from-env" {
		t.Errorf("GetSecret() = %q, want from-env", secret)
	}
}

func TestWithSecretClearsBytes(t *testing.T) {
	secret := []byte("hunter2")

	var seen string
	if err := withSecret(secret, func(s string) error {
		seen = s
		return nil
	}); err != nil {
		t.Fatalf("withSecret failed: %v", err)
	}

	if seen != "hunter2" {
		t.Errorf("fn saw %q, want hunter2", seen)
	}
	for i, b := range secret {
		if b != 0 {
			t.Fatalf("byte %d not cleared", i)
		}
	}
}
