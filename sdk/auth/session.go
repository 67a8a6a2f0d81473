// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/config"
	"github.com/scc-digitalhub/ddi-cli-sdk/sdk/utils"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// NewSession builds a credential cell from the configuration. Stored tokens
// are adopted as they are; without them a password grant runs with the
// configured credentials, prompting interactively for anything missing.
func NewSession(ctx context.Context, conf config.Config) (*Credentials, error) {
	return newSession(ctx, nil, conf)
}

func newSession(ctx context.Context, httpClient *http.Client, conf config.Config) (*Credentials, error) {
	c := &Credentials{
		client:   newTokenClient(httpClient, conf.Auth),
		username: conf.Auth.Username,
	}

	if conf.Auth.AccessToken != "" || conf.Auth.RefreshToken != "" {
		c.accessToken = conf.Auth.AccessToken
		c.refreshToken = conf.Auth.RefreshToken
		if err := c.Check(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}

	if err := c.Login(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Login runs the password grant, prompting for missing credentials.
func (c *Credentials) Login(ctx context.Context) error {
	username := c.Username()
	password := c.client.conf.Password
	if username == "" || password == "" {
		var err error
		username, password, err = promptCredentials(username)
		if err != nil {
			return err
		}
	}

	g, err := c.client.passwordGrant(ctx, username, password)
	if err != nil {
		utils.LogErrorf("login failed: %v", err)
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	c.mu.Lock()
	c.username = username
	c.adoptLocked(g)
	c.mu.Unlock()

	fmt.Println("You have been successfully logged in.")
	return nil
}

// Persist writes the current tokens back into the active environment so the
// next session can adopt them.
func (c *Credentials) Persist() error {
	c.mu.Lock()
	viper.Set(utils.DdiAccessToken, c.accessToken)
	viper.Set(utils.DdiRefreshToken, c.refreshToken)
	viper.Set(utils.DdiUsername, c.username)
	c.mu.Unlock()
	return utils.SaveCurrentEnv()
}

func promptCredentials(username string) (string, string, error) {
	fmt.Println("Please provide your credentials...")

	if username == "" {
		fmt.Print("Username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", err
		}
		username = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	return username, string(pw), nil
}
