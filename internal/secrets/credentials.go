package secrets

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app's credentials in the OS keychain.
	KeyringService = "jobsearch"
)

// Upstream credential names. They double as environment variable names.
const (
	AdzunaAppID      = "ADZUNA_APP_ID"
	AdzunaAPIKey     = "ADZUNA_API_KEY"
	JoobleAPIKey     = "JOOBLE_API_KEY"
	MuseAPIKey       = "THE_MUSE_API_KEY"
	USAJobsAPIKey    = "USA_JOBS_API_KEY"
	USAJobsUserAgent = "USA_JOBS_USER_AGENT"
)

var Known = []string{AdzunaAppID, AdzunaAPIKey, JoobleAPIKey, MuseAPIKey, USAJobsAPIKey, USAJobsUserAgent}

var ErrUnknownCredential = errors.New("unknown credential")

// Resolver looks credentials up in the environment first and the OS keychain
// second. The zero value reads os.Getenv and skips the keychain.
type Resolver struct {
	Getenv     func(string) string
	UseKeyring bool
}

func (r Resolver) Lookup(name string) string {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(name)); v != "" {
		return v
	}
	if !r.UseKeyring {
		return ""
	}
	v, err := keyring.Get(KeyringService, keyringAccount(name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// Status reports which known credentials resolve to a value. Values are
// never returned.
func (r Resolver) Status() map[string]bool {
	out := make(map[string]bool, len(Known))
	for _, name := range Known {
		out[name] = r.Lookup(name) != ""
	}
	return out
}

func Set(name, value string) error {
	if !slices.Contains(Known, name) {
		return fmt.Errorf("%w: %q", ErrUnknownCredential, name)
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("credential value is empty")
	}
	return keyring.Set(KeyringService, keyringAccount(name), strings.TrimSpace(value))
}

func Delete(name string) error {
	if !slices.Contains(Known, name) {
		return fmt.Errorf("%w: %q", ErrUnknownCredential, name)
	}
	err := keyring.Delete(KeyringService, keyringAccount(name))
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func keyringAccount(name string) string {
	return "jobsearch:" + strings.ToLower(name)
}
