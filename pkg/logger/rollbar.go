package logger

import (
	"learning_center_backend/internal/config"
	"net/http"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
)

var rollbarEnabled bool

func initRollbar(cfg *config.Config) {
	rollbarEnabled = cfg.Rollbar.Token != ""

	env := cfg.Rollbar.Environment
	if env == "" {
		env = cfg.Server.Mode
	}

	rollbar.SetToken(cfg.Rollbar.Token)
	rollbar.SetEnvironment(env)
	rollbar.SetServerHost(cfg.Server.Host)
	rollbar.SetCodeVersion(cfg.Server.Version)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(rollbarEnabled)
}

// Report forwards a server-side failure to rollbar when a token is configured.
// The login of the session user, if any, is attached as the person.
func Report(r *http.Request, err error, login string) {
	if !rollbarEnabled || err == nil {
		return
	}
	if login != "" {
		rollbar.SetPerson(login, login, "")
	} else {
		rollbar.ClearPerson()
	}
	rollbar.RequestError(rollbar.ERR, r, err)
}

func Close() {
	if rollbarEnabled {
		rollbar.Close()
	}
	_ = Log.Sync()
}
