package entity

import "time"

// ExtraField katalogdagi qo'shimcha ustun qiymati. Ustunlar fayldagi
// tartibda saqlanadi.
type ExtraField struct {
	Name  string
	Value string
}

// CatalogRow bitta mahsulot qatori. To'rtta zaxiralangan maydon har doim
// mavjud: manbada ustun bo'lmasa bo'sh string bo'ladi.
type CatalogRow struct {
	Code          string // ma
	StandardPrice string // hang_thuong
	PremiumPrice  string // cao_cap
	LeadTime      string // thoi_gian_lam (ixtiyoriy)
	Extra         []ExtraField
}

// Fields qatorning barcha maydonlarini ustunlar tartibida qaytaradi
func (r CatalogRow) Fields() []string {
	fields := []string{r.Code, r.StandardPrice, r.PremiumPrice, r.LeadTime}
	for _, extra := range r.Extra {
		fields = append(fields, extra.Value)
	}
	return fields
}

// Catalog mahsulotlar jadvali. Bir marta yuklanadi va jarayon davomida
// o'zgarmaydi.
type Catalog struct {
	Rows         []CatalogRow
	ExtraColumns []string // zaxiralanmagan ustun nomlari (tartib saqlanadi)
	Encoding     string   // muvaffaqiyatli o'qilgan encoding nomi
	Source       string   // fayl nomi
	LoadedAt     time.Time
}

// IsEmpty katalog bo'shligini tekshirish
func (c *Catalog) IsEmpty() bool {
	return c == nil || len(c.Rows) == 0
}

// Variant narx darajasi: Thường yoki Cao cấp
type Variant string

const (
	VariantNone     Variant = ""
	VariantStandard Variant = "hang_thuong"
	VariantPremium  Variant = "cao_cap"
)

// Label foydalanuvchiga ko'rsatiladigan nom
func (v Variant) Label() string {
	if v == VariantPremium {
		return "Cao cấp"
	}
	return "Thường"
}
