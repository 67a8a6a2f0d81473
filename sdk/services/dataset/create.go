// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// Create registers an empty dataset and returns its essentials. Actual data
// goes in afterwards, through the transfer service or the staging client.
func (s *DatasetService) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if req.Access == "" || req.Project == "" {
		return nil, errors.New("access and project are required")
	}

	zone := req.Zone
	if zone == "" {
		zone = s.zone
	}

	metadata := map[string]interface{}{
		"contributor":     orList(req.Contributor, utils.Unknown("contributor")),
		"creator":         orList(req.Creator, utils.Unknown("creator")),
		"owner":           orList(req.Owner, utils.Unknown("owner")),
		"publicationYear": orDefault(req.PublicationYear, strconv.Itoa(time.Now().Year())),
		"publisher":       orList(req.Publisher, utils.Unknown("publisher")),
		"resourceType":    orDefault(req.ResourceType, utils.Unknown("resource type")),
		"title":           orDefault(req.Title, "UNTITLED_Dataset_"+time.Now().Format("02-01-2006_15:04:05")),
	}
	if req.MetadataFile != "" {
		// leggi YAML e converti in JSON -> map
		data, err := os.ReadFile(req.MetadataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file: %w", err)
		}
		jsonBytes, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("yaml to json failed: %w", err)
		}
		var fromFile map[string]interface{}
		if err := json.Unmarshal(jsonBytes, &fromFile); err != nil {
			return nil, fmt.Errorf("failed to parse after JSON conversion: %w", err)
		}
		metadata = utils.MergeMaps(metadata, fromFile)
	}

	body, err := json.Marshal(map[string]interface{}{
		"push_method": orDefault(req.PushMethod, "empty"),
		"access":      req.Access,
		"project":     req.Project,
		"zone":        zone,
		"path":        req.Path,
		"metadata":    metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	out, err := s.http.Do(ctx, http.MethodPost, s.http.BuildURL(utils.RouteDataset, "", nil), body)
	if err != nil {
		return nil, err
	}

	res := &CreateResult{Raw: out.JSON}
	if out.JSON != nil {
		res.InternalID, _ = utils.StringField(out.JSON, "internalID", "internal_id")
		res.Title, _ = utils.StringField(out.JSON, "title")
	}
	utils.LogDebugf("dataset created: %s", res.InternalID)
	return res, nil
}

/* -------------------- helpers -------------------- */

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orList(v []string, def string) []string {
	if len(v) == 0 {
		return []string{def}
	}
	return v
}
