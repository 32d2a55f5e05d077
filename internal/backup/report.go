package backup

import (
	"errors"

	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/internal/store"
)

// MessageType tags a report message
type MessageType string

const (
	MessageSuccess MessageType = "success"
	MessageWarning MessageType = "warning"
	MessageError   MessageType = "error"
)

// MessageCode says what happened to an entry
type MessageCode string

const (
	CodeImported MessageCode = "imported"
	CodeUpdated  MessageCode = "updated"
	CodeSkipped  MessageCode = "skipped"

	CodeLabelInvalid    MessageCode = "label_invalid"
	CodeCategoryInvalid MessageCode = "category_invalid"
	CodeAdvancedFormat  MessageCode = "advanced_format"
	CodeSyncNode        MessageCode = "sync_node"
	CodeIconIgnored     MessageCode = "icon_ignored"
	CodeFieldIgnored    MessageCode = "field_ignored"
)

// Message is one outcome line for an entry. Error messages carry Err and use
// the WalletErrorKind as Code.
type Message struct {
	Type  MessageType
	Code  MessageCode
	Field string
	Err   error
}

// Report is the result of one import run. It is never persisted.
type Report struct {
	// Keys lists processed entry keys in processing order
	Keys     []string
	Messages map[string][]Message

	NewWallets     int
	SkippedWallets int

	// Imported are wallets committed during this run; Updated are existing
	// wallets whose label changed. Neither has been written to the store.
	Imported []*model.Wallet
	Updated  []*model.Wallet
}

func newReport() *Report {
	return &Report{Messages: make(map[string][]Message)}
}

func (r *Report) add(key string, m Message) {
	if _, ok := r.Messages[key]; !ok {
		r.Keys = append(r.Keys, key)
	}
	r.Messages[key] = append(r.Messages[key], m)
}

func (r *Report) addError(key string, err error) {
	m := Message{Type: MessageError, Err: err}

	var we *WalletError
	if errors.As(err, &we) {
		m.Code = MessageCode(we.Kind)
		m.Field = we.Field
	}
	r.add(key, m)
}

// Count returns the number of messages of type t across all entries
func (r *Report) Count(t MessageType) int {
	n := 0
	for _, msgs := range r.Messages {
		for _, m := range msgs {
			if m.Type == t {
				n++
			}
		}
	}
	return n
}

// Diff returns the store changes of this run
func (r *Report) Diff() store.WalletDiff {
	return store.WalletDiff{Added: r.Imported, Updated: r.Updated}
}

// Response converts the report for API clients
func (r *Report) Response() model.ImportResponse {
	resp := model.ImportResponse{
		NewWallets:     r.NewWallets,
		SkippedWallets: r.SkippedWallets,
		Warnings:       r.Count(MessageWarning),
		Errors:         r.Count(MessageError),
		Order:          append([]string{}, r.Keys...),
		Wallets:        make(map[string][]model.ImportMessage, len(r.Messages)),
	}

	for key, msgs := range r.Messages {
		out := make([]model.ImportMessage, 0, len(msgs))
		for _, m := range msgs {
			im := model.ImportMessage{Type: string(m.Type), Code: string(m.Code)}
			if m.Err != nil {
				im.Error = m.Err.Error()
			}
			out = append(out, im)
		}
		resp.Wallets[key] = out
	}

	return resp
}

// Progress receives import progress
type Progress interface {
	// SetTotal is called once, before the first entry
	SetTotal(n int)
	// Increment is called after every entry, whatever its outcome
	Increment()
}

// ProgressFuncs adapts two callbacks to Progress; nil callbacks are skipped
type ProgressFuncs struct {
	OnTotal func(n int)
	OnStep  func()
}

func (p ProgressFuncs) SetTotal(n int) {
	if p.OnTotal != nil {
		p.OnTotal(n)
	}
}

func (p ProgressFuncs) Increment() {
	if p.OnStep != nil {
		p.OnStep()
	}
}
