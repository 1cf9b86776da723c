package httptransport

import (
	"encoding/json"
	"net/http"

	"scholarhub/internal/validate"
	"scholarhub/pkg/domerrors"
	"scholarhub/pkg/platform/httputil"
)

// decodeArgs reads the request body into an untyped field bag. Operations own
// their allow-lists, so transport never enumerates fields.
func decodeArgs(r *http.Request) (validate.Args, error) {
	var args validate.Args
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		return nil, domerrors.New(domerrors.CodeInvalidArgument, "request body is not a valid JSON object")
	}
	return args, nil
}

func writeResult(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, v)
}
