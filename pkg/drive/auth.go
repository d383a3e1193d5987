package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var Scopes = []string{
	drive.DriveMetadataReadonlyScope,
	drive.DriveReadonlyScope,
}

// NewService builds a Drive service from an OAuth client file plus a previously issued user
// token. Without a token file the credentials file is treated as a service account key.
func NewService(ctx context.Context, credentialsFile, tokenFile string) (*drive.Service, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read google credentials %s: %w", credentialsFile, err)
	}

	tok, err := loadToken(tokenFile)
	switch {
	case err == nil:
		conf, err := google.ConfigFromJSON(creds, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("parse oauth client %s: %w", credentialsFile, err)
		}
		return drive.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	case errors.Is(err, os.ErrNotExist):
		jwtConf, err := google.JWTConfigFromJSON(creds, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("no token at %s and %s is not a service account key: %w", tokenFile, credentialsFile, err)
		}
		return drive.NewService(ctx, option.WithTokenSource(jwtConf.TokenSource(ctx)))
	default:
		return nil, err
	}
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", path, err)
	}
	return tok, nil
}
