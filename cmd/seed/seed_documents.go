package main

import (
	"errors"
	"log"
	"os"
	"time"

	"advisor-chat-be/internal/model"
	"advisor-chat-be/pkg/chunker"
	"advisor-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeds a small approved knowledge base so the assistant has something to
// retrieve on a fresh database. Safe to re-run: documents are matched by
// source URL and their chunks replaced.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding knowledge base documents...")

	published := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	docs := []model.Document{
		{
			Title:      "Roth Conversions in Early Retirement",
			SourceURL:  "https://fiatwm.com/insights/roth-conversions-early-retirement",
			SourceType: "article",
			Status:     "approved",
			Content: "The years between retirement and required minimum distributions are often " +
				"the lowest-tax-bracket window of your life. Converting traditional IRA dollars " +
				"to Roth during that window locks in today's rates on the converted amount and " +
				"removes future growth from the taxable side of the ledger. The right conversion " +
				"amount depends on how much headroom remains in your current bracket, how the " +
				"extra income affects Medicare premiums, and whether you can pay the tax bill " +
				"from outside the IRA. Converting too much in one year can push you into a higher " +
				"bracket and erase the benefit, so most plans spread conversions across several " +
				"years with an annual bracket check.",
			PublishedDate: &published,
			Metadata:      datatypes.JSONMap{"seed": true},
		},
		{
			Title:      "When to Claim Social Security",
			SourceURL:  "https://fiatwm.com/insights/social-security-timing",
			SourceType: "article",
			Status:     "approved",
			Content: "Claiming Social Security at 62 permanently reduces your benefit, while each " +
				"year of delay past full retirement age adds roughly eight percent until 70. The " +
				"break-even math matters less than how the decision fits the rest of the plan: " +
				"spousal and survivor benefits, the tax torpedo on provisional income, and whether " +
				"delaying lets you fill low-income years with Roth conversions. For married " +
				"couples it is common for the higher earner to delay to 70 so the survivor keeps " +
				"the larger check, while the lower earner claims earlier to fund spending.",
			PublishedDate: &published,
			Metadata:      datatypes.JSONMap{"seed": true},
		},
		{
			Title:      "Retirement Income Withdrawal Order",
			SourceURL:  "https://fiatwm.com/insights/withdrawal-order",
			SourceType: "article",
			Status:     "approved",
			Content: "Which account you draw from first changes how long the portfolio lasts. The " +
				"conventional order of taxable, then tax-deferred, then Roth is a starting point, " +
				"not a rule. Blending withdrawals across account types each year can keep taxable " +
				"income inside a target bracket, manage capital gains harvesting, and leave Roth " +
				"assets growing for heirs. A written income plan maps each year's spending to its " +
				"funding source so market drops do not force selling at the wrong time.",
			PublishedDate: &published,
			Metadata:      datatypes.JSONMap{"seed": true},
		},
	}

	cfg := chunker.DefaultConfig()
	for _, doc := range docs {
		if err := upsertDocument(db, doc, cfg); err != nil {
			color.Red("Failed: %s: %v", doc.Title, err)
			os.Exit(1)
		}
		color.Green("Seeded: %s", doc.Title)
	}

	color.Cyan("✅ Knowledge base seeding completed.")
}

func upsertDocument(db *gorm.DB, doc model.Document, cfg chunker.Config) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing model.Document
		err := tx.Where("source_url = ?", doc.SourceURL).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&doc).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			existing.Title = doc.Title
			existing.Content = doc.Content
			existing.Status = doc.Status
			existing.PublishedDate = doc.PublishedDate
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if err := tx.Where("document_id = ?", existing.Id).Delete(&model.Chunk{}).Error; err != nil {
				return err
			}
			doc = existing
		}

		pieces := chunker.Split(doc.Content, cfg)
		for i, piece := range pieces {
			chunk := model.Chunk{
				DocumentId: doc.Id,
				ChunkIndex: i,
				Content:    piece.Content,
				TokenCount: piece.TokenCount,
			}
			if err := tx.Create(&chunk).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
