package handler

import "github.com/gin-gonic/gin"

// Register mounts the reminder API under /api/v1.
func Register(r gin.IRouter, reminders *ReminderHandler, settings *SettingsHandler) {
	v1 := r.Group("/api/v1")
	{
		v1.POST("/categories/:category/enable", reminders.HandleEnable)
		v1.POST("/categories/:category/disable", reminders.HandleDisable)
		v1.POST("/categories/:category/refresh", reminders.HandleRefresh)
		v1.GET("/categories/:category/state", reminders.HandleState)
		v1.GET("/alarms/pending", reminders.HandlePending)

		v1.POST("/events/credit-sale", reminders.HandleCreditSale)
		v1.POST("/events/stock-deducted", reminders.HandleStockDeducted)
		v1.POST("/events/sale-completed", reminders.HandleSaleCompleted)
		v1.POST("/events/creditor-changed", reminders.HandleCreditorChanged)

		v1.GET("/settings", settings.HandleGetSettings)
		v1.PUT("/settings", settings.HandleUpdateSettings)
		v1.POST("/maintenance/purge", settings.HandlePurge)
	}
}
