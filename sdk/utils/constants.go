// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import "time"

const (
	IniName            = ".ddi.ini"
	IniSource          = "ini_source"
	CurrentEnvironment = "current_environment"
	UpdatedEnvKey      = "updated_environment"

	DdiEndpoint      = "ddi_endpoint"
	DdiZone          = "ddi_zone"
	DdiUsername      = "ddi_username"
	DdiPassword      = "ddi_password"
	DdiAccessToken   = "ddi_access_token"
	DdiRefreshToken  = "ddi_refresh_token"
	DdiTokenEndpoint = "ddi_token_endpoint"
	DdiClientId      = "ddi_client_id"
	DdiClientSecret  = "ddi_client_secret"
	DdiIssuer        = "ddi_issuer"
	AirflowEndpoint  = "airflow_endpoint"

	StagingEndpoint  = "staging_endpoint"
	StagingBucket    = "staging_bucket"
	StagingAccessKey = "staging_access_key"
	StagingSecretKey = "staging_secret_key"
	StagingRegion    = "staging_region"

	outdatedAfterHours = 1
)

// Access levels a dataset can be shared under.
const (
	AccessPublic  = "public"
	AccessProject = "project"
	AccessUser    = "user"
)

// Zone fallback when neither config nor request specify one.
const DefaultZone = "MainZone"

// Transfer defaults. The chunk size is the one the upload gateway is tuned for.
const (
	DefaultChunkSize     int64 = 1048576
	DefaultUploadRetries       = 3
	DefaultUploadDelay         = 5 * time.Second

	DefaultPollRetries = 200
	DefaultPollDelay   = 5 * time.Second

	DownloadChunkSize = 4096
)

// API route fragments under the DDI endpoint.
const (
	RouteDataset        = "dataset"
	RouteDatasetSearch  = "dataset/search/metadata"
	RouteDatasetListing = "dataset/listing"
	RouteTransferUpload = "transfer/upload/"
	RouteTransferDown   = "transfer/download"
	RouteTransferStatus = "transfer/status"
)

// Unknown builds the placeholder recorded for a metadata field nobody filled in.
func Unknown(field string) string {
	return "UNKNOWN " + field
}
