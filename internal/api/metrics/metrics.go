// Package metrics defines and registers all custom Prometheus metrics for
// the publishing API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "publishing"

// RegistrationsTotal counts account registrations.
// Label:
//   - outcome: "created", "duplicate_email", "invalid_interest", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "not_verified", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// OTPIssuedTotal counts one-time codes issued.
// Label:
//   - purpose: "email_verification" or "password_reset"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time codes issued, by purpose.",
	},
	[]string{"purpose"},
)

// OTPValidationsTotal counts OTP checks.
// Labels:
//   - purpose: "email_verification" or "password_reset"
//   - result: "ok", "absent", "mismatch", "expired"
var OTPValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_validations_total",
		Help:      "Total number of one-time code validations, by purpose and result.",
	},
	[]string{"purpose", "result"},
)

// MailDeliveriesTotal counts outbound OTP mails.
// Label:
//   - result: "sent" or "failed"
var MailDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_deliveries_total",
		Help:      "Total number of OTP mail delivery attempts, by result.",
	},
	[]string{"result"},
)
