package commands

import (
	"SmartDocs/internal/config"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"SmartDocs/internal/cli/api"
	"SmartDocs/internal/cli/auth"
)

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Download a document to the current directory" }
func (getCmd) Usage() string       { return "get <document-id> [output-file]" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}

	endpoint := fmt.Sprintf("%s/api/documents/%d", strings.TrimRight(cfg.ServerURL, "/"), id)
	token, _ := auth.LoadToken()
	resp, err := api.Download(ctx, endpoint, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return fmt.Errorf("not logged in")
	case http.StatusForbidden:
		return fmt.Errorf("access to document %d denied", id)
	case http.StatusNotFound:
		return fmt.Errorf("document %d not found", id)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	out := ""
	if len(args) > 1 {
		out = args[1]
	} else if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		out = filepath.Base(params["filename"])
	}
	if out == "" || out == "." {
		out = fmt.Sprintf("document-%d", id)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Saved %s (%d bytes)\n", out, n)
	return nil
}

func init() { RegisterCmd(getCmd{}) }
