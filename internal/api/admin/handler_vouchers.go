package admin

import (
	"net/http"
	"time"

	"finmate/database"
	"finmate/internal/domain/vouchers"

	"github.com/gin-gonic/gin"
)

type voucherRequest struct {
	Code            string    `json:"code" binding:"required"`
	DiscountPercent float64   `json:"discountPercent"`
	DiscountAmount  float64   `json:"discountAmount"`
	MaxUses         int       `json:"maxUses"`
	ValidFrom       time.Time `json:"validFrom" binding:"required"`
	ValidTo         time.Time `json:"validTo" binding:"required"`
	IsActive        *bool     `json:"isActive"`
}

func ListVouchers(c *gin.Context) {
	var list []vouchers.Voucher
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vouchers"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func CreateVoucher(c *gin.Context) {
	var req voucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DiscountPercent <= 0 && req.DiscountAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Voucher needs a discount percent or amount"})
		return
	}
	if !req.ValidTo.After(req.ValidFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validTo must be after validFrom"})
		return
	}

	code := vouchers.NormalizeCode(req.Code)
	var existing int64
	database.DB.Model(&vouchers.Voucher{}).Where("code = ?", code).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Voucher code already exists"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	v := vouchers.Voucher{
		Code:            code,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		MaxUses:         req.MaxUses,
		ValidFrom:       req.ValidFrom,
		ValidTo:         req.ValidTo,
		IsActive:        active,
	}
	if err := database.DB.Create(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create voucher"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func UpdateVoucher(c *gin.Context) {
	var v vouchers.Voucher
	if err := database.DB.First(&v, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		return
	}

	var req voucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.ValidTo.After(req.ValidFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validTo must be after validFrom"})
		return
	}

	v.Code = vouchers.NormalizeCode(req.Code)
	v.DiscountPercent = req.DiscountPercent
	v.DiscountAmount = req.DiscountAmount
	v.MaxUses = req.MaxUses
	v.ValidFrom = req.ValidFrom
	v.ValidTo = req.ValidTo
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update voucher"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func DeleteVoucher(c *gin.Context) {
	var v vouchers.Voucher
	if err := database.DB.First(&v, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		return
	}
	if err := database.DB.Delete(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete voucher"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voucher deleted"})
}
