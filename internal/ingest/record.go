package ingest

import (
	"strings"

	"github.com/gemledger/internal/constants"

	"github.com/shopspring/decimal"
)

// StoneField 标准字段名
type StoneField string

const (
	FieldSKU         StoneField = "sku"
	FieldLab         StoneField = "lab"
	FieldShape       StoneField = "shape"
	FieldColor       StoneField = "color"
	FieldClarity     StoneField = "clarity"
	FieldCut         StoneField = "cut"
	FieldCarat       StoneField = "carat"
	FieldLength      StoneField = "length"
	FieldWidth       StoneField = "width"
	FieldHeight      StoneField = "height"
	FieldTotalAmount StoneField = "total_amount"
	FieldImageURL    StoneField = "image_url"
)

// Aliases 每个标准字段对应的表头别名，按从具体到宽泛排列
type Aliases map[StoneField][]string

// DefaultAliases 各字段别名互不重叠，每个字段独立解析。
//
// 短于 3 个字符的别名（id、ct）只做整词匹配，比"相等或包含"更窄：
// "Width" 不会被当作 id，代价是 "Lot ID" 这类表头也不会命中 sku，
// 需要操作员改用 Stone ID、SKU 等列名。
var DefaultAliases = Aliases{
	FieldSKU:         {"stoneid", "sku", "stockid", "stockno", "id"},
	FieldLab:         {"lab", "sertificate", "certificate", "cert"},
	FieldShape:       {"shape"},
	FieldColor:       {"color", "colour", "clr"},
	FieldClarity:     {"clarity", "purity", "cla"},
	FieldCut:         {"cut"},
	FieldCarat:       {"carat", "weight", "ct"},
	FieldLength:      {"length"},
	FieldWidth:       {"width"},
	FieldHeight:      {"height"},
	FieldTotalAmount: {"totalamount", "amount", "price"},
	FieldImageURL:    {"photolink", "photo", "image", "link", "imageurl"},
}

// Record 规范化后的石头记录
type Record struct {
	SKU         string          `json:"sku"`
	Lab         string          `json:"lab"`
	Shape       string          `json:"shape"`
	Color       string          `json:"color"`
	Clarity     string          `json:"clarity"`
	Cut         string          `json:"cut"`
	Carat       float64         `json:"carat"`
	Length      float64         `json:"length"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ImageURL    string          `json:"image_url"`
	Status      string          `json:"status"`
	Priority    int             `json:"priority"`
}

// Defaults 缺省值
type Defaults struct {
	Lab    string
	Cut    string
	Status string
}

// Normalizer 把 RawRow 转成 Record
type Normalizer struct {
	Aliases  Aliases
	Defaults Defaults
}

// DefaultNormalizer 导入流程使用的规范化器，切工缺省保持为空
func DefaultNormalizer() *Normalizer {
	return &Normalizer{
		Aliases: DefaultAliases,
		Defaults: Defaults{
			Lab:    constants.DefaultStoneLab,
			Status: constants.StoneStatusInStock,
		},
	}
}

// NormalizeSKU sku 去空白并转大写
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Normalize 转换单行，sku 为空时返回 false
func (n *Normalizer) Normalize(row RawRow) (Record, bool) {
	sku := NormalizeSKU(n.text(row, FieldSKU))
	if sku == "" {
		return Record{}, false
	}
	rec := Record{
		SKU:         sku,
		Lab:         upper(n.text(row, FieldLab)),
		Shape:       upper(n.text(row, FieldShape)),
		Color:       upper(n.text(row, FieldColor)),
		Clarity:     upper(n.text(row, FieldClarity)),
		Cut:         upper(n.text(row, FieldCut)),
		Carat:       n.number(row, FieldCarat),
		Length:      n.number(row, FieldLength),
		Width:       n.number(row, FieldWidth),
		Height:      n.number(row, FieldHeight),
		TotalAmount: n.amount(row, FieldTotalAmount),
		ImageURL:    strings.TrimSpace(n.text(row, FieldImageURL)),
		Status:      n.Defaults.Status,
	}
	if rec.Lab == "" {
		rec.Lab = n.Defaults.Lab
	}
	if rec.Cut == "" {
		rec.Cut = n.Defaults.Cut
	}
	if rec.Status == "" {
		rec.Status = constants.StoneStatusInStock
	}
	return rec, true
}

// NormalizeRow 使用默认规范化器
func NormalizeRow(row RawRow) (Record, bool) {
	return DefaultNormalizer().Normalize(row)
}

func (n *Normalizer) cell(row RawRow, field StoneField) Cell {
	aliases := n.Aliases
	if aliases == nil {
		aliases = DefaultAliases
	}
	c, _ := Resolve(row, aliases[field])
	return c
}

func (n *Normalizer) text(row RawRow, field StoneField) string {
	return n.cell(row, field).String()
}

func (n *Normalizer) number(row RawRow, field StoneField) float64 {
	return CleanNumber(n.cell(row, field))
}

func (n *Normalizer) amount(row RawRow, field StoneField) decimal.Decimal {
	return CleanDecimal(n.cell(row, field)).Round(2)
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
