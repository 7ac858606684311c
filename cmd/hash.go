package cmd

import (
	"context"
	"fmt"
)

// Hash prints a freshly salted record for the secret, or only its digest when raw
func Hash(ctx context.Context, s Settings, flags map[string]string, raw bool) {
	engine, err := NewEngine(s, flags)
	if err != nil {
		HandleError(err)
	}

	secret := GetNewSecretOrExit()
	err = withSecret(secret, func(secret string) error {
		rec, err := engine.Hash(ctx, secret)
		if err != nil {
			return err
		}
		if raw {
			fmt.Println(rec.Hash())
		} else {
			fmt.Println(rec)
		}
		return nil
	})
	if err != nil {
		HandleError(err)
	}
}
