package types

// 登录门禁的拒绝原因，措辞与"凭证错误"明确区分，
// 运维可据此分辨"账号有效但未分配租户"与"账号无效".
const (
	LoginReasonOK               = "ok"
	LoginReasonAwaitingReassign = "awaiting reassignment"
	LoginReasonTenantNotActive  = "tenant not active"
	LoginReasonTenantGone       = "tenant no longer exists"
)

// LoginDecision 登录门禁判定结果.
type LoginDecision struct {
	UserID  uint   `json:"user_id"`
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}
