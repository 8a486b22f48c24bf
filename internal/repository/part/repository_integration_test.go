//go:build integration

package repository_test

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/sewing-inventory/internal/model"
	repository "github.com/you-humble/sewing-inventory/internal/repository/part"
	service "github.com/you-humble/sewing-inventory/internal/service/part"
	"github.com/you-humble/sewing-inventory/platform/clock"
)

var baseTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newPart(number, name, modelName string, updatedAt time.Time) *model.Part {
	return &model.Part{
		ID:         uuid.NewString(),
		PartName:   name,
		PartNumber: number,
		ModelName:  modelName,
		Location: model.Location{
			Floor:     1,
			Rack:      gofakeit.IntRange(1, 10),
			Row:       gofakeit.IntRange(1, 6),
			Column:    gofakeit.IntRange(1, 4),
			BoxNumber: "BX-01",
			BoxColor:  gofakeit.Color(),
		},
		Price: model.Price{
			LandingPrice: decimal.RequireFromString("10.00"),
			RetailPrice:  decimal.RequireFromString("14.50"),
		},
		Quantity:  5,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

var _ = Describe("PartRepository", func() {
	var repo = func() interface {
		service.PartRepository
		repository.BatchCreator
	} {
		return repository.NewPartRepository(partsColl)
	}

	Context("Create and lookups", func() {
		It("round-trips a part with exact prices", func() {
			p := newPart("TG-001", "Thread Guide 3", "Singer 1507", baseTime)
			p.Price.LandingPrice = decimal.RequireFromString("0.10")
			p.Price.RetailPrice = decimal.RequireFromString("1234567.89")

			Expect(repo().Create(ctx, p)).To(Succeed())

			got, err := repo().PartByID(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.PartNumber).To(Equal("TG-001"))
			Expect(got.Location).To(Equal(p.Location))
			Expect(got.Price.LandingPrice.Equal(p.Price.LandingPrice)).To(BeTrue())
			Expect(got.Price.RetailPrice.Equal(p.Price.RetailPrice)).To(BeTrue())
			Expect(got.CreatedAt.Equal(baseTime)).To(BeTrue())

			byNumber, err := repo().PartByNumber(ctx, "TG-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(byNumber.ID).To(Equal(p.ID))
		})

		It("maps unique index violations to ErrDuplicateKey", func() {
			Expect(repo().Create(ctx, newPart("TG-001", "Thread Guide 1", "Singer 1507", baseTime))).To(Succeed())

			err := repo().Create(ctx, newPart("TG-001", "Thread Guide 2", "Juki DDL-8700", baseTime))
			Expect(err).To(MatchError(model.ErrDuplicateKey))
		})

		It("reports unknown ids as not found", func() {
			_, err := repo().PartByID(ctx, uuid.NewString())
			Expect(err).To(MatchError(model.ErrPartNotFound))

			_, err = repo().PartByNumber(ctx, "NOPE-404")
			Expect(err).To(MatchError(model.ErrPartNotFound))
		})
	})

	Context("Update", func() {
		It("returns the document after the update and keeps untouched fields", func() {
			p := newPart("NP-010", "Needle Plate 2", "Janome HD3000", baseTime)
			Expect(repo().Create(ctx, p)).To(Succeed())

			later := baseTime.Add(time.Hour)
			got, err := repo().Update(ctx, p.ID, model.PartPatch{
				Quantity: lo.ToPtr(int64(0)),
				Location: &model.LocationPatch{Floor: lo.ToPtr(3)},
				Price:    &model.PricePatch{RetailPrice: lo.ToPtr(decimal.RequireFromString("19.99"))},
			}, later)
			Expect(err).NotTo(HaveOccurred())

			Expect(got.Quantity).To(BeZero())
			Expect(got.Location.Floor).To(Equal(3))
			Expect(got.Location.Rack).To(Equal(p.Location.Rack))
			Expect(got.Price.LandingPrice.Equal(p.Price.LandingPrice)).To(BeTrue())
			Expect(got.Price.RetailPrice.Equal(decimal.RequireFromString("19.99"))).To(BeTrue())
			Expect(got.UpdatedAt.Equal(later)).To(BeTrue())
			Expect(got.CreatedAt.Equal(baseTime)).To(BeTrue())
		})

		It("rejects a part number taken by another part", func() {
			Expect(repo().Create(ctx, newPart("BC-001", "Bobbin Case 1", "Singer 1507", baseTime))).To(Succeed())
			other := newPart("BC-002", "Bobbin Case 2", "Singer 1507", baseTime)
			Expect(repo().Create(ctx, other)).To(Succeed())

			_, err := repo().Update(ctx, other.ID, model.PartPatch{PartNumber: lo.ToPtr("BC-001")}, baseTime)
			Expect(err).To(MatchError(model.ErrDuplicateKey))
		})

		It("reports unknown ids as not found", func() {
			_, err := repo().Update(ctx, uuid.NewString(), model.PartPatch{Quantity: lo.ToPtr(int64(1))}, baseTime)
			Expect(err).To(MatchError(model.ErrPartNotFound))
		})
	})

	Context("Delete", func() {
		It("removes the part once", func() {
			p := newPart("FD-001", "Feed Dog 1", "Brother CS6000i", baseTime)
			Expect(repo().Create(ctx, p)).To(Succeed())

			Expect(repo().Delete(ctx, p.ID)).To(Succeed())
			Expect(repo().Delete(ctx, p.ID)).To(MatchError(model.ErrPartNotFound))
		})
	})

	Context("List", func() {
		It("pages through parts most recently updated first", func() {
			for i := range 5 {
				p := newPart(fmt.Sprintf("PF-%03d", i), "Presser Foot", "Singer 1507", baseTime.Add(time.Duration(i)*time.Minute))
				Expect(repo().Create(ctx, p)).To(Succeed())
			}

			total, err := repo().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(5)))

			first, err := repo().List(ctx, model.PageRequest{Page: 1, PageSize: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(numbers(first)).To(Equal([]string{"PF-004", "PF-003"}))

			last, err := repo().List(ctx, model.PageRequest{Page: 3, PageSize: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(numbers(last)).To(Equal([]string{"PF-000"}))

			beyond, err := repo().List(ctx, model.PageRequest{Page: 4, PageSize: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(beyond).To(BeEmpty())
		})
	})

	Context("Search", func() {
		BeforeEach(func() {
			for _, p := range []*model.Part{
				newPart("TG-001", "Thread Guide 1", "Singer 1507", baseTime),
				newPart("TG-002", "Thread Guide 2", "Juki DDL-8700", baseTime.Add(time.Minute)),
				newPart("NP-001", "Needle Plate 1", "Singer 1507", baseTime.Add(2*time.Minute)),
				newPart("MT-001", "Motor 1", "Janome HD3000", baseTime.Add(3*time.Minute)),
			} {
				Expect(repo().Create(ctx, p)).To(Succeed())
			}
		})

		It("matches patterns case-insensitively across fields", func() {
			got, err := repo().MatchPattern(ctx, "tg-00")
			Expect(err).NotTo(HaveOccurred())
			Expect(numbers(got)).To(Equal([]string{"TG-002", "TG-001"}))

			got, err = repo().MatchPattern(ctx, "janome")
			Expect(err).NotTo(HaveOccurred())
			Expect(numbers(got)).To(Equal([]string{"MT-001"}))
		})

		It("treats regex metacharacters literally", func() {
			got, err := repo().MatchPattern(ctx, ".*")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeEmpty())
		})

		It("ranks text hits by relevance", func() {
			got, err := repo().SearchText(ctx, "thread guide")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))

			for i, sp := range got {
				Expect(sp.Score).To(BeNumerically(">", 0))
				if i > 0 {
					Expect(sp.Score).To(BeNumerically("<=", got[i-1].Score))
				}
			}
		})

		It("stops at pattern hits and ranks text otherwise", func() {
			svc := service.NewInventoryService(repo(), clock.NewFixedClock(baseTime))

			res, err := svc.Search(ctx, "Singer")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Stage).To(Equal(model.StagePatternMatch))
			Expect(numbers(res.Parts)).To(Equal([]string{"NP-001", "TG-001"}))

			res, err = svc.Search(ctx, "needle plate")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Stage).To(Equal(model.StageRankedText))
			Expect(res.Parts).NotTo(BeEmpty())
			Expect(res.Parts[0].PartNumber).To(Equal("NP-001"))
			Expect(res.Scores).To(HaveLen(len(res.Parts)))
		})
	})

	Context("Summary", func() {
		It("returns zeroes for an empty inventory", func() {
			sum, err := repo().Summary(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.TotalItems).To(BeZero())
			Expect(sum.FinancialSummary.TotalLandingValue.IsZero()).To(BeTrue())
			Expect(sum.FloorDistribution).To(BeEmpty())
			Expect(sum.TopModels).To(BeEmpty())
		})

		It("sums values exactly and groups by floor and model", func() {
			for i := range 3 {
				p := newPart(fmt.Sprintf("SH-%03d", i), "Shuttle Hook", "Singer 1507", baseTime)
				p.Location.Floor = i%2 + 1
				p.Price.LandingPrice = decimal.RequireFromString("0.10")
				p.Price.RetailPrice = decimal.RequireFromString("0.20")
				p.Quantity = 1
				Expect(repo().Create(ctx, p)).To(Succeed())
			}

			sum, err := repo().Summary(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(sum.TotalItems).To(Equal(int64(3)))
			Expect(sum.FinancialSummary.TotalLandingValue.Equal(decimal.RequireFromString("0.3"))).To(BeTrue())
			Expect(sum.FinancialSummary.TotalRetailValue.Equal(decimal.RequireFromString("0.6"))).To(BeTrue())
			Expect(sum.FinancialSummary.TotalQuantity).To(Equal(int64(3)))
			Expect(sum.FloorDistribution).To(Equal([]model.FloorCount{
				{Floor: 1, Count: 2},
				{Floor: 2, Count: 1},
			}))
			Expect(sum.TopModels).To(Equal([]model.ModelCount{{ModelName: "Singer 1507", Count: 3}}))
		})

		It("limits top models", func() {
			for i := range model.TopModelsLimit + 2 {
				p := newPart(fmt.Sprintf("PD-%03d", i), "Pedal", fmt.Sprintf("Model %02d", i), baseTime)
				Expect(repo().Create(ctx, p)).To(Succeed())
			}

			sum, err := repo().Summary(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.TopModels).To(HaveLen(model.TopModelsLimit))
			Expect(sum.TopModels[0].ModelName).To(Equal("Model 00"))
		})
	})

	Context("Bulk import", func() {
		It("creates new parts and updates existing ones by part number", func() {
			existing := newPart("NB-001", "Needle Bar 1", "Singer 1507", baseTime)
			Expect(repo().Create(ctx, existing)).To(Succeed())

			svc := service.NewInventoryService(repo(), clock.NewFixedClock(baseTime.Add(time.Hour)))

			report, err := svc.Import(ctx, []model.ImportItem{
				{Draft: model.PartDraft{PartNumber: "NB-001", PartName: "Needle Bar Heavy", Quantity: lo.ToPtr(int64(42))}},
				{Draft: draftOf(newPart("NB-002", "Needle Bar 2", "Juki DDL-8700", baseTime))},
				{Draft: model.PartDraft{PartNumber: "NB-003"}},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Success).To(Equal(2))
			Expect(report.Created).To(Equal(1))
			Expect(report.Updated).To(Equal(1))
			Expect(report.Failures).To(Equal(1))
			Expect(report.Errors).To(HaveLen(1))
			Expect(report.Errors[0].PartNumber).To(Equal("NB-003"))

			updated, err := repo().PartByNumber(ctx, "NB-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(existing.ID))
			Expect(updated.PartName).To(Equal("Needle Bar Heavy"))
			Expect(updated.ModelName).To(Equal("Singer 1507"))
			Expect(updated.Quantity).To(Equal(int64(42)))

			total, err := repo().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
		})
	})

	Context("Re-import", func() {
		It("updates every part when the same batch is imported again", func() {
			clk := clock.NewFixedClock(baseTime)
			svc := service.NewInventoryService(repo(), clk)

			batch := lo.Map([]string{"SH-101", "SH-102", "SH-103"}, func(number string, i int) model.ImportItem {
				return model.ImportItem{Draft: draftOf(newPart(number, fmt.Sprintf("Shuttle Hook %d", i+1), "Juki DDL-8700", baseTime))}
			})
			n := len(batch)

			first, err := svc.Import(ctx, batch)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Success).To(Equal(n))
			Expect(first.Created).To(Equal(n))
			Expect(first.Updated).To(BeZero())
			Expect(first.Failures).To(BeZero())

			clk.Advance(time.Minute)

			second, err := svc.Import(ctx, batch)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Success).To(Equal(n))
			Expect(second.Updated).To(Equal(n))
			Expect(second.Created).To(BeZero())
			Expect(second.Errors).To(BeEmpty())

			total, err := repo().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(n)))

			p, err := repo().PartByNumber(ctx, "SH-101")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.CreatedAt.Equal(baseTime)).To(BeTrue())
			Expect(p.UpdatedAt.Equal(baseTime.Add(time.Minute))).To(BeTrue())
		})
	})

	Context("Seeding", func() {
		It("bootstraps generated parts in one batch", func() {
			n, err := repository.PartsBootstrap(ctx, repo(), 25, gofakeit.New(42), baseTime)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(25))

			total, err := repo().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(25)))

			deleted, err := repo().DeleteAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(Equal(int64(25)))
		})
	})
})

func numbers(parts []*model.Part) []string {
	return lo.Map(parts, func(p *model.Part, _ int) string { return p.PartNumber })
}

func draftOf(p *model.Part) model.PartDraft {
	return model.PartDraft{
		PartName:   p.PartName,
		PartNumber: p.PartNumber,
		ModelName:  p.ModelName,
		Location:   lo.ToPtr(p.Location),
		Price:      lo.ToPtr(p.Price),
		Quantity:   lo.ToPtr(p.Quantity),
	}
}
