package forecast

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
)

// snapshotFingerprint huella SHA-256 de las tres entradas del ciclo. Si dos
// ciclos consecutivos leen snapshots idénticos, la transformación se puede
// omitir. Las entradas se serializan en orden canónico por id para que la
// huella no dependa del orden de lectura de las fuentes.
func snapshotFingerprint(
	products []entity.Product,
	sales []entity.Sale,
	resellers []entity.Reseller,
) string {
	ps := make([]entity.Product, len(products))
	copy(ps, products)
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })

	ss := make([]entity.Sale, len(sales))
	copy(ss, sales)
	sort.Slice(ss, func(i, j int) bool { return ss[i].ID < ss[j].ID })

	rs := make([]entity.Reseller, len(resellers))
	copy(rs, resellers)
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })

	h := sha256.New()
	for _, p := range ps {
		fmt.Fprintf(h, "p|%s|%s|%s|%d|%d|%d|%d|%s|%d|%s\n",
			p.ID, p.Name, p.Price.String(), p.Stock,
			p.Reorder.LeadTimeDays, p.Reorder.SafetyStockDays, p.Reorder.ReviewPeriodDays,
			p.Reorder.FreightCostPerUnit.String(), p.Reorder.MinOrderQuantity, p.Reorder.SupplierName)
	}
	for _, s := range ss {
		fmt.Fprintf(h, "s|%s|%s|%s|%s|%t|%d\n",
			s.ID, s.ProductID, s.ResellerID, s.TotalAmount.String(), s.Paid, s.CreatedAt.Unix())
	}
	for _, r := range rs {
		fmt.Fprintf(h, "r|%s|%s|%s\n", r.ID, r.Name, r.Email)
	}
	return hex.EncodeToString(h.Sum(nil))
}
