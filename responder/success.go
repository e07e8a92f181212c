package responder

import "net/http"

// Kind names the outcome rendered by Success.
type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
	KindAll    Kind = "all"
	KindDetail Kind = "detail"
	KindOther  Kind = "other"
)

// Success writes a 200 response for kind. Create, update and delete render
// "<subject> created|updated|deleted"; other renders message; all, detail
// and unknown kinds render data verbatim.
func (r *Responder) Success(w http.ResponseWriter, req *http.Request, kind Kind, data any, message string) {
	r.RespondWithJSON(w, req, http.StatusOK, r.successBody(kind, data, message))
}

func (r *Responder) successBody(kind Kind, data any, message string) any {
	switch kind {
	case KindCreate:
		return MessageBody{Message: r.subject + " created"}
	case KindUpdate:
		return MessageBody{Message: r.subject + " updated"}
	case KindDelete:
		return MessageBody{Message: r.subject + " deleted"}
	case KindOther:
		return MessageBody{Message: message}
	default:
		return data
	}
}
