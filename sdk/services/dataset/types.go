// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

// usata embedded nelle altre request
type ScopeRequest struct {
	Access  string // public | project | user
	Project string
	Zone    string // vuota -> zona configurata
}

type CreateRequest struct {
	ScopeRequest

	PushMethod string // default "empty"
	Path       string

	Title           string
	Contributor     []string
	Creator         []string
	Owner           []string
	Publisher       []string
	PublicationYear string
	ResourceType    string

	// MetadataFile points to a YAML file merged over the default metadata
	// block, file fields win.
	MetadataFile string
}

// CreateResult carries the essentials of the newly created dataset.
type CreateResult struct {
	InternalID string
	Title      string
	Raw        map[string]interface{}
}

type DeleteRequest struct {
	ScopeRequest

	InternalID string
}

type ListingRequest struct {
	ScopeRequest

	InternalID string
	Path       string // vuoto -> intero dataset
}

// Overview is one dataset row of the search listing.
type Overview struct {
	Title           string
	Access          string
	Project         string
	Zone            string
	InternalID      string
	CreationDate    string
	Owner           []string
	Creator         []string
	Contributor     []string
	Publisher       []string
	PublicationYear string
	ResourceType    string
	Compression     string
	Encryption      string

	Raw map[string]interface{}
}
