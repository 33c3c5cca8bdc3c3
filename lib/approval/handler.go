package approvalhandler

import (
	"fmt"
	"time"

	"employee-portal-backend/db"
	approvalstore "employee-portal-backend/lib/approval/store"
	requeststore "employee-portal-backend/lib/request/store"
	connectionhub "employee-portal-backend/lib/ws/hub/connection-hub"
	"employee-portal-backend/models"
	requestapimodels "employee-portal-backend/models/api/request"
	dbmodels "employee-portal-backend/models/db"
	wsmodels "employee-portal-backend/models/ws"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Decide(requestID string, dept models.Department, state models.ApprovalState, reviewerID string) error
	Get(requestID string) ([]requestapimodels.ApprovalView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithTx(db.DB)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store:        approvalstore.NewInstance(tx),
		requestStore: requeststore.NewInstance(tx),
	}
}

type impl struct {
	store        approvalstore.Provider
	requestStore requeststore.Provider
}

func (i impl) GetLogger(requestID string) *log.Entry {
	logger := log.
		WithField("request_id", requestID)
	return logger
}

// Decide records a department decision. The transition is one-way: only a
// pending required approval can change, and the conditional update in the
// store keeps two racing reviewers from both winning.
func (i impl) Decide(requestID string, dept models.Department, state models.ApprovalState, reviewerID string) error {
	if !dept.IsValid() {
		return models.NewInvalidArgument("unknown department")
	}
	if !state.IsTerminal() {
		return models.NewInvalidArgument("decision must be accepted or rejected")
	}
	request, err := i.requestStore.GetByID(requestID)
	if err != nil {
		i.GetLogger(requestID).WithError(err).Error("request lookup failed")
		return err
	}
	if request == nil {
		return models.NewNotFound("request not found")
	}
	updated, err := i.store.Decide(requestID, dept, state, reviewerID, time.Now())
	if err != nil {
		i.GetLogger(requestID).WithError(err).Error("decision update failed")
		return err
	}
	if !updated {
		approval := request.ApprovalFor(dept)
		if approval == nil || !approval.Required {
			return models.NewInvalidArgument("department approval is not required for this request")
		}
		return models.NewAlreadyExists("decision already recorded")
	}
	i.notifyOwner(*request, dept, state)
	return nil
}

func (i impl) Get(requestID string) ([]requestapimodels.ApprovalView, error) {
	list, err := i.store.ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.ApprovalView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.ApprovalConvert(rec))
	}
	return result, nil
}

func (i impl) notifyOwner(request dbmodels.Request, dept models.Department, state models.ApprovalState) {
	if connectionhub.Instance == nil || request.UserID == "" {
		return
	}
	connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
		ToUserID: request.UserID,
		Time:     time.Now().Format("02.01.2006 15:04:05"),
		Code:     wsmodels.CodeRequestDecided,
		Msg:      fmt.Sprintf("%s decision on request %s: %s", dept, request.UniqueID, state),
	})
}
