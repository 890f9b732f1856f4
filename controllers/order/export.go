package orderControllers

import (
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/models"
	"github.com/imanmaris99/amimum-api/web"
)

// ExportOrdersToExcel dumps all orders with their snapshot prices, one row
// per order item. Admin only.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to fetch orders", err))
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to create Excel sheet", err))
			return
		}

		headers := []string{
			"OrderID", "UserID", "Status", "DeliveryType", "TotalPrice",
			"ProductID", "PackTypeID", "Quantity", "PricePerItem", "ItemTotal",
			"CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			for _, item := range o.Items {
				row := sheet.AddRow()
				row.AddCell().SetValue(o.ID)
				row.AddCell().SetValue(o.UserID)
				row.AddCell().SetValue(string(o.Status))
				row.AddCell().SetValue(string(o.DeliveryType))
				row.AddCell().SetValue(o.TotalPrice.String())
				row.AddCell().SetValue(item.ProductID)
				row.AddCell().SetValue(item.PackTypeID)
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(item.PricePerItem.String())
				row.AddCell().SetValue(item.TotalPrice.String())
				row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to write Excel file", err))
			return
		}
	}
}
