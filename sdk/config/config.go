// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Config complessiva passata all’SDK (niente viper/INI qui)
type Config struct {
	Ddi     DdiConfig
	Auth    AuthConfig
	Staging StagingConfig
}

type DdiConfig struct {
	BaseURL        string
	Zone           string
	AirflowBaseURL string
}

type AuthConfig struct {
	TokenEndpoint string
	ClientId      string
	ClientSecret  string
	Username      string
	Password      string
	AccessToken   string
	RefreshToken  string
}

type StagingConfig struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
	Bucket      string
}

// FromViper builds a Config from the registered environment. Call
// utils.RegisterIniCfgWithViper first.
func FromViper() Config {
	return Config{
		Ddi: DdiConfig{
			BaseURL:        viper.GetString(utils.DdiEndpoint),
			Zone:           viper.GetString(utils.DdiZone),
			AirflowBaseURL: viper.GetString(utils.AirflowEndpoint),
		},
		Auth: AuthConfig{
			TokenEndpoint: viper.GetString(utils.DdiTokenEndpoint),
			ClientId:      viper.GetString(utils.DdiClientId),
			ClientSecret:  viper.GetString(utils.DdiClientSecret),
			Username:      viper.GetString(utils.DdiUsername),
			Password:      viper.GetString(utils.DdiPassword),
			AccessToken:   viper.GetString(utils.DdiAccessToken),
			RefreshToken:  viper.GetString(utils.DdiRefreshToken),
		},
		Staging: StagingConfig{
			AccessKey:   viper.GetString(utils.StagingAccessKey),
			SecretKey:   viper.GetString(utils.StagingSecretKey),
			Region:      viper.GetString(utils.StagingRegion),
			EndpointURL: viper.GetString(utils.StagingEndpoint),
			Bucket:      viper.GetString(utils.StagingBucket),
		},
	}
}
