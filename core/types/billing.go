// Package types - Derived billing state and run summary
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversationBillingState is the reconciled per-conversation view built
// once per run. All message counts satisfy
// BillableMessages = GrossMessages - PostAgentMessages - PostCreditMessages.
type ConversationBillingState struct {
	// ConversationID identifies the conversation
	ConversationID string `json:"conversation_id"`

	// BillableSession is the 24h session-window result
	BillableSession bool `json:"billable_session"`

	// CreditFlagged marks a conversation routed to credit evaluation
	CreditFlagged bool `json:"credit_flagged"`

	// AgentCutoff is the earliest human-agent notification, nil if the
	// conversation never left the bot
	AgentCutoff *time.Time `json:"agent_cutoff,omitempty"`

	// CreditCutoff is the earliest credit-trigger message, nil if none
	CreditCutoff *time.Time `json:"credit_cutoff,omitempty"`

	// GrossMessages is the total message count for the conversation
	GrossMessages int `json:"gross_messages"`

	// PostAgentMessages counts messages at or after the agent cutoff
	PostAgentMessages int `json:"post_agent_messages"`

	// PostCreditMessages counts messages before the agent cutoff but at
	// or after the credit cutoff
	PostCreditMessages int `json:"post_credit_messages"`

	// BillableMessages counts messages before both cutoffs
	BillableMessages int `json:"billable_messages"`
}

// BillingSummary is the singleton result of one processing run: the
// quantities and amounts a monthly invoice is built from.
type BillingSummary struct {
	// HSMGross counts billable 24h conversation sessions before discounts
	HSMGross int `json:"hsm_gross"`

	// HSMCreditDiscount counts billable sessions that were credit-flagged
	HSMCreditDiscount int `json:"hsm_credit_discount"`

	// HSMNet is max(0, gross - credit discount - free tier allowance)
	HSMNet int `json:"hsm_net"`

	// MessageGross is the total message count across all conversations
	MessageGross int `json:"message_gross"`

	// MessageAgentDiscount counts messages discounted by agent handoff
	MessageAgentDiscount int `json:"message_agent_discount"`

	// MessageCreditDiscount counts messages discounted by a credit trigger
	MessageCreditDiscount int `json:"message_credit_discount"`

	// MessageNet is the net billable message count
	MessageNet int `json:"message_net"`

	// HSMAmount is HSMNet priced at the flat HSM rate
	HSMAmount decimal.Decimal `json:"hsm_amount"`

	// MessageAmount is MessageNet priced at the applicable volume tier rate
	MessageAmount decimal.Decimal `json:"message_amount"`

	// AppliedMessageRate is the tier rate applied to the whole net quantity
	AppliedMessageRate decimal.Decimal `json:"applied_message_rate"`

	// MonthlyFee is the fixed broker fee
	MonthlyFee decimal.Decimal `json:"monthly_fee"`

	// Subtotal is fee + HSM amount + message amount
	Subtotal decimal.Decimal `json:"subtotal"`

	// Tax is Subtotal * tax rate
	Tax decimal.Decimal `json:"tax"`

	// Total is the final amount to invoice
	Total decimal.Decimal `json:"total"`

	// Currency is the invoice currency
	Currency Currency `json:"currency"`
}

// Currency represents a currency code
type Currency string

const (
	CurrencyPEN Currency = "PEN"
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}
