package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/pricing"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,13}$`)

// New returns a configured validator: field errors are reported by json name,
// "mobile" is available as a tag, and order drafts must carry a total equal to
// their items subtotal plus shipping.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("mobile", func(fl validatorv10.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})

	v.RegisterStructValidation(orderDraftStructValidation, orders.Draft{})

	return v
}

// orderDraftStructValidation verifies Total equals items subtotal + shipping (to the cent).
func orderDraftStructValidation(sl validatorv10.StructLevel) {
	d := sl.Current().Interface().(orders.Draft)

	lines := make([]pricing.Line, 0, len(d.Items))
	for _, it := range d.Items {
		lines = append(lines, pricing.Line{Price: it.Price, Quantity: it.Quantity})
	}
	want := pricing.Compute(lines).Total.Round(2)
	got := decimal.NewFromFloat(d.Total).Round(2)
	if !want.Equal(got) {
		sl.ReportError(d.Total, "total", "Total", "total_match_items",
			fmt.Sprintf("items total %s != total %.2f", want.StringFixed(2), d.Total))
	}
}
