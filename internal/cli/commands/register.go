package commands

import (
	"SmartDocs/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"SmartDocs/internal/cli/api"
	"SmartDocs/internal/cli/auth"
)

type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store the auth cookie" }
func (registerCmd) Usage() string {
	return "register <username> <full-name> <email> <password> <role>"
}

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 5 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/register"
	req := RegisterRequest{
		Username: args[0],
		FullName: args[1],
		Email:    args[2],
		Password: args[3],
		Role:     args[4],
	}
	resp, body, err := api.PostJSON(ctx, endpoint, req, "")
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		if err := api.PersistAuthFromResponse(resp); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}
		if err := auth.SaveLastLogin(args[0]); err != nil {
			return fmt.Errorf("saving login: %w", err)
		}
		fmt.Fprintln(Out, "Registered and logged in")
		return nil
	case http.StatusConflict:
		return errors.New("username or email already in use")
	case http.StatusBadRequest:
		return fmt.Errorf("rejected: %s", strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(registerCmd{}) }
