package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobQuarantineAuditHourly = "quarantine.audit.hourly"
	JobOrphanReportDaily     = "orphan.report.daily"
)

// Cron 表达式常量（可选，但推荐一并集中管理）.
const (
	CronQuarantineAuditHourly = "0 * * * *"
	CronOrphanReportDaily     = "30 6 * * *"
)
