package commands

import (
	"SmartDocs/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"SmartDocs/internal/cli/api"
	"SmartDocs/internal/cli/auth"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the currently authenticated user" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/me"
	token, _ := auth.LoadToken()
	resp, body, err := api.GetJSON(ctx, endpoint, token)
	if err != nil {
		// offline fallback: report who logged in last instead of failing
		if login, lerr := auth.LoadLastLogin(); lerr == nil {
			fmt.Fprintf(Out, "Server unreachable; last login: %s\n", login)
			return nil
		}
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var me struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(body, &me); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Logged in as %s (%s), role: %s\n", me.Username, me.FullName, me.Role)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
