package converter

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/you-humble/sewing-inventory/internal/model"
	partv1 "github.com/you-humble/sewing-inventory/pkg/api/part/v1"
)

func PartFromModel(p *model.Part) partv1.Part {
	return partv1.Part{
		ID:         p.ID,
		PartName:   p.PartName,
		PartNumber: p.PartNumber,
		ModelName:  p.ModelName,
		Location: partv1.LocationView{
			Floor:     p.Location.Floor,
			Rack:      p.Location.Rack,
			Row:       p.Location.Row,
			Column:    p.Location.Column,
			BoxNumber: p.Location.BoxNumber,
			BoxColor:  p.Location.BoxColor,
		},
		Price: partv1.PriceView{
			LandingPrice: p.Price.LandingPrice,
			RetailPrice:  p.Price.RetailPrice,
		},
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func PartsFromModel(parts []*model.Part) []partv1.Part {
	return lo.Map(parts, func(p *model.Part, _ int) partv1.Part {
		return PartFromModel(p)
	})
}

func PartsPageFromModel(page *model.PartsPage) partv1.PartsPage {
	return partv1.PartsPage{
		Parts:       PartsFromModel(page.Parts),
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		Total:       page.Total,
	}
}

func SearchResultFromModel(res *model.SearchResult) []partv1.SearchHit {
	out := make([]partv1.SearchHit, 0, len(res.Parts))
	for i, p := range res.Parts {
		hit := partv1.SearchHit{Part: PartFromModel(p)}
		if res.Stage == model.StageRankedText && i < len(res.Scores) {
			hit.Score = lo.ToPtr(res.Scores[i])
		}
		out = append(out, hit)
	}
	return out
}

func SummaryFromModel(s *model.Summary) partv1.Summary {
	return partv1.Summary{
		TotalItems: s.TotalItems,
		FinancialSummary: partv1.FinancialSummary{
			TotalLandingValue: s.FinancialSummary.TotalLandingValue,
			TotalRetailValue:  s.FinancialSummary.TotalRetailValue,
			TotalQuantity:     s.FinancialSummary.TotalQuantity,
		},
		FloorDistribution: lo.Map(s.FloorDistribution, func(f model.FloorCount, _ int) partv1.FloorCount {
			return partv1.FloorCount{Floor: f.Floor, Count: f.Count}
		}),
		TopModels: lo.Map(s.TopModels, func(m model.ModelCount, _ int) partv1.ModelCount {
			return partv1.ModelCount{ModelName: m.ModelName, Count: m.Count}
		}),
	}
}

func ImportReportFromModel(r *model.ImportReport) partv1.ImportReport {
	return partv1.ImportReport{
		Success:  r.Success,
		Failures: r.Failures,
		Created:  r.Created,
		Updated:  r.Updated,
		Errors: lo.Map(r.Errors, func(e model.ImportError, _ int) partv1.ImportError {
			return partv1.ImportError{PartNumber: e.PartNumber, Error: e.Error}
		}),
	}
}

// PartDraftFromRequest rejects nested values that are present but incomplete.
// A missing location or price object is left for the service to report.
func PartDraftFromRequest(req partv1.PartRequest) (model.PartDraft, error) {
	draft := model.PartDraft{
		PartName:   req.PartName,
		PartNumber: req.PartNumber,
		ModelName:  req.ModelName,
		Quantity:   req.Quantity,
	}

	var errs []error

	if loc := req.Location; loc != nil {
		errs = append(errs,
			requireField("location.floor", loc.Floor != nil),
			requireField("location.rack", loc.Rack != nil),
			requireField("location.row", loc.Row != nil),
			requireField("location.column", loc.Column != nil),
		)

		draft.Location = &model.Location{
			Floor:     lo.FromPtr(loc.Floor),
			Rack:      lo.FromPtr(loc.Rack),
			Row:       lo.FromPtr(loc.Row),
			Column:    lo.FromPtr(loc.Column),
			BoxNumber: loc.BoxNumber,
			BoxColor:  loc.BoxColor,
		}
	}

	if price := req.Price; price != nil {
		errs = append(errs,
			requireField("price.landingPrice", price.LandingPrice != nil),
			requireField("price.retailPrice", price.RetailPrice != nil),
		)

		draft.Price = &model.Price{
			LandingPrice: lo.FromPtr(price.LandingPrice),
			RetailPrice:  lo.FromPtr(price.RetailPrice),
		}
	}

	if err := errors.Join(errs...); err != nil {
		return draft, errors.Join(model.ErrValidation, err)
	}

	return draft, nil
}

func PartPatchFromRequest(req partv1.UpdatePartRequest) model.PartPatch {
	patch := model.PartPatch{
		PartName:   req.PartName,
		PartNumber: req.PartNumber,
		ModelName:  req.ModelName,
		Quantity:   req.Quantity,
	}

	if loc := req.Location; loc != nil {
		patch.Location = &model.LocationPatch{
			Floor:     loc.Floor,
			Rack:      loc.Rack,
			Row:       loc.Row,
			Column:    loc.Column,
			BoxNumber: loc.BoxNumber,
			BoxColor:  loc.BoxColor,
		}
	}

	if price := req.Price; price != nil {
		patch.Price = &model.PricePatch{
			LandingPrice: price.LandingPrice,
			RetailPrice:  price.RetailPrice,
		}
	}

	return patch
}

func requireField(name string, present bool) error {
	if present {
		return nil
	}
	return fmt.Errorf("%s is required", name)
}
