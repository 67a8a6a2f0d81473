// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Config holds all logical keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive (not used here, but handy for logging)
// - bind: "false" to NOT bind from env (we still can set defaults)
type Config struct {
	DdiEndpoint      string `vkey:"ddi_endpoint"       env:"DDI_ENDPOINT"       persist:"true"`
	DdiZone          string `vkey:"ddi_zone"           env:"DDI_ZONE"           persist:"true" default:"MainZone"`
	DdiUsername      string `vkey:"ddi_username"       env:"DDI_USERNAME"       persist:"true"`
	DdiPassword      string `vkey:"ddi_password"       env:"DDI_PASSWORD"       persist:"false" secret:"true"`
	DdiAccessToken   string `vkey:"ddi_access_token"   env:"DDI_ACCESS_TOKEN"   persist:"true" secret:"true"`
	DdiRefreshToken  string `vkey:"ddi_refresh_token"  env:"DDI_REFRESH_TOKEN"  persist:"true" secret:"true"`
	DdiTokenEndpoint string `vkey:"ddi_token_endpoint" env:"DDI_TOKEN_ENDPOINT" persist:"true"`
	DdiClientId      string `vkey:"ddi_client_id"      env:"DDI_CLIENT_ID"      persist:"true"`
	DdiClientSecret  string `vkey:"ddi_client_secret"  env:"DDI_CLIENT_SECRET"  persist:"true" secret:"true"`
	DdiIssuer        string `vkey:"ddi_issuer"         env:"DDI_ISSUER"         persist:"true"`
	AirflowEndpoint  string `vkey:"airflow_endpoint"   env:"DDI_AIRFLOW_ENDPOINT" persist:"true"`

	StagingEndpoint  string `vkey:"staging_endpoint"   env:"DDI_STAGING_ENDPOINT"   persist:"true"`
	StagingBucket    string `vkey:"staging_bucket"     env:"DDI_STAGING_BUCKET"     persist:"true"`
	StagingAccessKey string `vkey:"staging_access_key" env:"DDI_STAGING_ACCESS_KEY" persist:"true" secret:"true"`
	StagingSecretKey string `vkey:"staging_secret_key" env:"DDI_STAGING_SECRET_KEY" persist:"true" secret:"true"`
	StagingRegion    string `vkey:"staging_region"     env:"DDI_STAGING_REGION"     persist:"true"`

	IniSource          string `vkey:"ini_source"          env:"INI_SOURCE"     persist:"true"`
	UpdatedEnvironment string `vkey:"updated_environment" env:"UPDATED_ENVIRONMENT" persist:"true" bind:"false"`
	CurrentEnvironment string `vkey:"current_environment" env:"DDI_ENVIRONMENT" persist:"false"`
}

// resolveEnvName: --env > "default"
func resolveEnvName(optionalEnv ...string) string {
	if len(optionalEnv) > 0 && optionalEnv[0] != "" && strings.ToLower(optionalEnv[0]) != "null" {
		return optionalEnv[0]
	}
	return "default"
}

// Bind env for all fields of Config using struct tags.
func BindEnvFromStruct() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}

		// if false not to bind
		if f.Tag.Get("bind") == "false" {
			if def := f.Tag.Get("default"); def != "" && !viper.IsSet(key) {
				viper.SetDefault(key, def)
			}
			continue
		}

		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = viper.BindEnv(key, env)

		if def := f.Tag.Get("default"); def != "" && !viper.IsSet(key) {
			viper.SetDefault(key, def)
		}
	}
}

// Write a new INI with only fields marked persist:"true".
func WriteIniFromStruct(iniPath, envName string) error {
	cfg := ini.Empty()
	cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	sec := cfg.Section(envName)

	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("persist") != "true" {
			continue
		}
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		val := viper.GetString(key)
		if val == "" {
			continue
		}
		sec.Key(key).SetValue(val)
	}

	return cfg.SaveTo(iniPath)
}

// Update or create INI section from current Viper values (persist:"true" only).
func UpdateIniFromStruct(iniPath, envName string) error {
	cfg, err := ini.Load(iniPath)
	if err != nil {
		return WriteIniFromStruct(iniPath, envName)
	}
	sec := cfg.Section(envName)

	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("persist") != "true" {
			continue
		}
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		val := viper.GetString(key)
		if val == "" {
			continue
		}
		sec.Key(key).SetValue(val)
	}

	if !cfg.Section("DEFAULT").HasKey(CurrentEnvironment) {
		cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	}
	sec.Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	return cfg.SaveTo(iniPath)
}

// SaveCurrentEnv persists the persist-tagged keys into the active section,
// e.g. after a login rotated the stored tokens.
func SaveCurrentEnv() error {
	env := viper.GetString(CurrentEnvironment)
	if env == "" {
		env = resolveEnvName()
	}
	if err := UpdateIniFromStruct(getIniPath(), env); err != nil {
		return fmt.Errorf("failed to save ini: %w", err)
	}
	return nil
}

// Load [DEFAULT] + [env] into Viper (TOML in-memory). ENV can still override on Get().
func loadIniSectionIntoViper(cfg *ini.File, env string) error {
	def := cfg.Section("DEFAULT")
	selected := def
	if env != "" && cfg.HasSection(env) {
		selected = cfg.Section(env)
		fmt.Printf("Using env: [%s]\n", env)
	} else if env == "" || strings.EqualFold(env, "DEFAULT") {
		fmt.Println("Using env: [DEFAULT]")
	} else {
		fmt.Println("Env not found, falling back to [DEFAULT]")
	}

	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if selected != nil && selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.ReadConfig(&buf)
}

// RegisterIniCfgWithViper:
// 1) bind ENV from struct (live)
// 2) load INI or lazy-bootstrap it from the environment (writes only target env)
// 3) load active section into Viper and set current_environment
func RegisterIniCfgWithViper(optionalEnv ...string) error {
	iniPath := getIniPath()

	BindEnvFromStruct()

	cfg, err := ini.Load(iniPath)
	if err != nil {
		fmt.Println("INI not found; Get information from Env variables")
		envName, bootErr := bootstrapFromEnv(iniPath, optionalEnv...)
		if bootErr != nil {
			fmt.Printf("Bootstrap failed: %v\n", bootErr)
			if envName == "" {
				envName = resolveEnvName(optionalEnv...)
			}
			viper.Set(CurrentEnvironment, envName)
			return nil
		}
		cfg, err = ini.Load(iniPath)
		if err != nil {
			fmt.Printf("INI written but cannot reload: %v (ENV-only mode)\n", err)
			viper.Set(CurrentEnvironment, viper.GetString(CurrentEnvironment))
			return nil
		}
	}

	// active env: --env > DEFAULT.current_environment > default
	env := resolveEnvName(optionalEnv...)
	if env == "default" {
		if v := cfg.Section("DEFAULT").Key(CurrentEnvironment).String(); v != "" {
			env = v
		}
	}

	if err := loadIniSectionIntoViper(cfg, env); err != nil {
		return fmt.Errorf("failed to load INI into viper: %w", err)
	}
	viper.Set(CurrentEnvironment, env)
	return nil
}

// Bootstrap (when INI is missing): read all variables from OS envs using Config struct.
// - honors `bind:"false"` (skip ENV read for that key)
// - applies `default:"..."` only if key is unset
func bootstrapFromEnv(iniPath string, optionalEnv ...string) (string, error) {
	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		vkey := f.Tag.Get("vkey")
		if vkey == "" {
			continue
		}

		if strings.EqualFold(f.Tag.Get("bind"), "false") {
			if def := f.Tag.Get("default"); def != "" && !viper.IsSet(vkey) {
				viper.SetDefault(vkey, def)
			}
			continue
		}

		envName := f.Tag.Get("env")
		if envName == "" {
			envName = strings.ToUpper(strings.ReplaceAll(vkey, ".", "_"))
		}

		if val, ok := os.LookupEnv(envName); ok && val != "" {
			viper.Set(vkey, val)
			continue
		}

		if def := f.Tag.Get("default"); def != "" && !viper.IsSet(vkey) {
			viper.SetDefault(vkey, def)
		}
	}

	baseEndpoint := viper.GetString(DdiEndpoint)
	if baseEndpoint == "" {
		return "", fmt.Errorf("missing %s: set it in env or in %s", DdiEndpoint, IniName)
	}

	envName := resolveEnvName(optionalEnv...)
	viper.Set(CurrentEnvironment, envName)

	// Marks the ini as env-built so the well-known refresh knows to skip it
	viper.Set(IniSource, "env")

	if err := WriteIniFromStruct(iniPath, envName); err != nil {
		return "", fmt.Errorf("write ini failed: %w", err)
	}

	if _, err := ini.Load(iniPath); err != nil {
		return "", fmt.Errorf("ini written but cannot reload: %w", err)
	}

	return envName, nil
}
