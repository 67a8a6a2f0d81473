// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// CheckUpdateEnvironment decides whether to refresh the environment:
// - missing/empty timestamp -> update
// - invalid timestamp       -> update
// - older than TTL          -> update
func CheckUpdateEnvironment() {
	const key = UpdatedEnvKey

	if viper.IsSet(IniSource) && viper.GetString(IniSource) == "env" {
		fmt.Printf("INI file has been created from enviromental variables...skip update\n")
		return
	}

	val := viper.GetString(key)
	isSet := viper.IsSet(key)
	fmt.Printf("Config freshness (%s): isSet=%v value=%q\n", key, isSet, val)

	if !isSet || val == "" {
		fmt.Println("Update: no timestamp.")
		updateEnvironment()
		return
	}

	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		fmt.Printf("Update: invalid timestamp (%v).\n", err)
		updateEnvironment()
		return
	}

	now := time.Now().UTC()
	age := now.Sub(t.UTC())
	ttl := time.Duration(outdatedAfterHours) * time.Hour

	if age >= ttl {
		fmt.Printf("Update: outdated (age %s ≥ TTL %s).\n", age, ttl)
		updateEnvironment()
		return
	}

	fmt.Printf("Fresh: age %s < TTL %s.\n", age, ttl)
}

// Fetch the issuer well-known, update Viper, bump timestamp, persist.
func updateEnvironment() {
	fmt.Println("Updating environment…")
	issuer := viper.GetString(DdiIssuer)
	if issuer == "" {
		fmt.Println("Skip: ddi_issuer is empty.")
		return
	}

	oidc, err := FetchConfig(issuer + "/.well-known/openid-configuration")
	if err != nil {
		fmt.Printf("OpenID fetch failed: %v\n", err)
		return
	}
	for k, v := range oidc {
		viper.Set(k, ReflectValue(v))
	}

	// the discovery document names do not match ours, map them in
	if te, ok := oidc["token_endpoint"].(string); ok && te != "" {
		viper.Set(DdiTokenEndpoint, te)
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	viper.Set(UpdatedEnvKey, ts)
	fmt.Printf("Set %s=%s\n", UpdatedEnvKey, ts)

	env := viper.GetString(CurrentEnvironment)
	if env == "" {
		env = resolveEnvName()
	}
	if err := UpdateIniFromStruct(getIniPath(), env); err != nil {
		fmt.Printf("Persist failed: %v\n", err)
		return
	}
	fmt.Printf("Persisted to [%s].\n", env)
}
