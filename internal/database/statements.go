package database

// Requêtes CQL utilisées par les repositories
const (
	stmtSelectSettings = `SELECT name, store_id, value, updated_at FROM settings`
	stmtUpsertSetting  = `INSERT INTO settings (name, store_id, value, updated_at) VALUES (?, ?, ?, ?)`
	stmtDeleteSetting  = `DELETE FROM settings WHERE name = ? AND store_id = ?`

	stmtSelectLocaleResources = `SELECT name, value FROM locale_resources`
	stmtUpsertLocaleResource  = `INSERT INTO locale_resources (name, value) VALUES (?, ?)`
	stmtDeleteLocaleResource  = `DELETE FROM locale_resources WHERE name = ?`

	stmtSelectStores = `SELECT id, name, url, display_order FROM stores`

	stmtSelectCurrencies = `SELECT id, name, currency_code, rate, published, display_order FROM currencies`

	stmtSelectMeasureWeights    = `SELECT id, name, system_keyword, ratio, display_order FROM measure_weights`
	stmtSelectMeasureDimensions = `SELECT id, name, system_keyword, ratio, display_order FROM measure_dimensions`

	stmtSelectCustomerRoles = `SELECT id, name, system_name, active FROM customer_roles`

	stmtSelectCampaigns = `SELECT id, name, subject, body, store_id, customer_role_id, created_at, dont_send_before FROM campaigns`
	stmtSelectCampaign  = stmtSelectCampaigns + ` WHERE id = ?`
	stmtInsertCampaign  = `INSERT INTO campaigns (id, name, subject, body, store_id, customer_role_id, created_at, dont_send_before)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmtInsertAuditLog = `INSERT INTO audit_logs (id, user_id, user_email, action, resource, resource_id,
		old_value, new_value, ip_address, user_agent, success, error_msg, timestamp, session_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmtSelectAuditLogs = `SELECT id, user_id, user_email, action, resource, resource_id,
		old_value, new_value, ip_address, user_agent, success, error_msg, timestamp, session_id FROM audit_logs`
)
