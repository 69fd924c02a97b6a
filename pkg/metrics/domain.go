package metrics

import "github.com/prometheus/client_golang/prometheus"

// 租户生命周期领域指标.
var (
	// TenantDeletions 租户删除次数，按结果分类（committed/rolled_back/conflict）.
	TenantDeletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_deletions_total",
			Help: "Tenant deletion attempts by outcome",
		},
		[]string{"result"},
	)

	// ReassignedRows 删除事务中迁入隔离区/脱离租户的行数，按实体分类.
	ReassignedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_reassigned_rows_total",
			Help: "Rows detached from deleted tenants by entity kind",
		},
		[]string{"kind"},
	)

	// LoginDenials 登录门禁拒绝次数，按原因分类.
	LoginDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_denials_total",
			Help: "Login gate denials by reason",
		},
		[]string{"reason"},
	)

	// QuarantinedRows 隔离区当前行数，按实体分类，由后台审计任务刷新.
	QuarantinedRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "quarantine_rows",
			Help: "Rows currently sitting in quarantine by entity kind",
		},
		[]string{"kind"},
	)

	// DeletionDuration 删除事务耗时.
	DeletionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tenant_deletion_duration_seconds",
			Help:    "Wall time of tenant deletion transactions",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	registry.MustRegister(
		TenantDeletions, ReassignedRows, LoginDenials,
		QuarantinedRows, DeletionDuration,
	)
}
