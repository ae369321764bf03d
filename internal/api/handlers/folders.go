package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/prabhath004/quizly/internal/database"
	"github.com/prabhath004/quizly/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateFolder handles folder creation
func CreateFolder(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name is required"})
		return
	}

	folder := models.Folder{
		Name:   input.Name,
		UserID: currentUserID(c),
	}

	if err := database.GetDB().Create(&folder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// ListFolders handles listing all folders for a user
func ListFolders(c *gin.Context) {
	var folders []models.Folder
	userID := currentUserID(c)
	db := database.GetDB()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 {
		limit = 50
	}
	search := c.Query("search")

	query := db.Model(&models.Folder{}).Where("user_id = ?", userID)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count folders"})
		return
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&folders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders"})
		return
	}

	// Attach deck count to each folder
	for i := range folders {
		var count int64
		if err := db.Model(&models.Deck{}).Where("folder_id = ?", folders[i].ID).Count(&count).Error; err != nil {
			continue
		}
		folders[i].DeckCount = count
	}

	c.JSON(http.StatusOK, gin.H{
		"folders": folders,
		"pagination": gin.H{
			"current_page": page,
			"total_pages":  (total + int64(limit) - 1) / int64(limit),
			"total_items":  total,
			"per_page":     limit,
		},
	})
}

// UpdateFolder handles renaming a folder
func UpdateFolder(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name is required"})
		return
	}

	userID := currentUserID(c)
	var folder models.Folder

	if err := database.GetDB().Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&folder).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	if err := database.GetDB().Model(&folder).Update("name", input.Name).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update folder"})
		return
	}

	var deckCount int64
	if err := database.GetDB().Model(&models.Deck{}).Where("folder_id = ?", folder.ID).Count(&deckCount).Error; err == nil {
		folder.DeckCount = deckCount
	}

	c.JSON(http.StatusOK, folder)
}

// DeleteFolder removes a folder and moves its decks to root. The decks keep
// existing with folder reference and order index cleared.
func DeleteFolder(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var folder models.Folder
	if err := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&folder).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Deck{}).
			Where("folder_id = ?", folder.ID).
			Updates(map[string]interface{}{"folder_id": nil, "order_index": nil}).Error; err != nil {
			return err
		}
		return tx.Delete(&folder).Error
	})
	if err != nil {
		log.Printf("Delete folder error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted successfully", "folder_id": folder.ID})
}

// ReorderDecks assigns order indexes 0..n-1 to the given decks within a
// folder. The folder id "root" targets decks outside any folder.
func ReorderDecks(c *gin.Context) {
	var input struct {
		DeckIDs []string `json:"deck_ids" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck_ids is required"})
		return
	}

	userID := currentUserID(c)
	folderID := c.Param("id")

	var folderRef *string
	if folderID != "root" {
		var folder models.Folder
		if err := database.GetDB().Where("id = ? AND user_id = ?", folderID, userID).First(&folder).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		folderRef = &folder.ID
	}

	// All named decks must belong to the user and live in the target folder.
	var count int64
	query := database.GetDB().Model(&models.Deck{}).
		Where("id IN ? AND user_id = ?", input.DeckIDs, userID)
	if folderRef == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderRef)
	}
	if err := query.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify decks"})
		return
	}
	if count != int64(len(input.DeckIDs)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All decks must belong to the target folder"})
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		for i, deckID := range input.DeckIDs {
			if err := tx.Model(&models.Deck{}).
				Where("id = ? AND user_id = ?", deckID, userID).
				Update("order_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Reorder decks error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder decks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Decks reordered successfully", "ordered": len(input.DeckIDs)})
}
