package wsmodels

type ServerMessage struct {
	ToUserID string `json:"-"`
	Time     string `json:"time"` // event time
	Code     string `json:"code"` // event code
	Msg      string `json:"msg"`  // event text
}

const (
	CodeRequestCreated = "REQUEST_CREATED"
	CodeRequestDecided = "REQUEST_DECIDED"
)
