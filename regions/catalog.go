package regions

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Region is one fixed administrative area used as the aggregation
// granularity: the 36 states plus the Federal Capital Territory.
type Region struct {
	Name     string   `json:"name"`
	Display  Point    `json:"display"` // representative coordinate for map pins
	Terms    []string `json:"-"`       // lowercase address match terms, most specific first
	Boundary []Point  `json:"-"`       // closed ring, last edge back to first vertex implied
}

// box builds a rectangular boundary ring. The catalog carries coarse
// bounding boxes rather than survey-grade polygons; region bucketing only
// needs the right bucket, not cartography.
func box(minLat, maxLat, minLng, maxLng float64) []Point {
	return []Point{
		{minLat, minLng},
		{minLat, maxLng},
		{maxLat, maxLng},
		{maxLat, minLng},
	}
}

// Fallback is where unresolvable entities land. The capital territory is the
// least-wrong default for unclassified coordinates near the origin, not a
// geographic truth; the product side still owes a decision on whether these
// should get their own "unclassified" bucket instead.
const Fallback = "Federal Capital Territory"

// Catalog is the fixed region list. Declaration order doubles as the
// tie-break priority for both address and point matching, so keep it sorted
// and think twice before reordering.
var Catalog = []Region{
	// bare "aba" would match Yaba and Calabar
	{Name: "Abia", Display: Point{5.53, 7.49}, Terms: []string{"abia", "umuahia"}, Boundary: box(4.9, 6.0, 7.2, 7.9)},
	{Name: "Adamawa", Display: Point{9.21, 12.48}, Terms: []string{"adamawa", "yola"}, Boundary: box(7.4, 10.9, 11.4, 13.7)},
	{Name: "Akwa Ibom", Display: Point{5.04, 7.92}, Terms: []string{"akwa ibom", "uyo"}, Boundary: box(4.5, 5.5, 7.4, 8.4)},
	{Name: "Anambra", Display: Point{6.21, 7.07}, Terms: []string{"anambra", "awka", "onitsha"}, Boundary: box(5.7, 6.8, 6.6, 7.3)},
	{Name: "Bauchi", Display: Point{10.31, 9.84}, Terms: []string{"bauchi"}, Boundary: box(9.5, 12.3, 8.75, 11.0)},
	{Name: "Bayelsa", Display: Point{4.93, 6.26}, Terms: []string{"bayelsa", "yenagoa"}, Boundary: box(4.2, 5.4, 5.4, 6.5)},
	{Name: "Benue", Display: Point{7.73, 8.52}, Terms: []string{"benue", "makurdi"}, Boundary: box(6.4, 8.1, 7.8, 10.0)},
	{Name: "Borno", Display: Point{11.83, 13.15}, Terms: []string{"borno", "maiduguri"}, Boundary: box(10.0, 13.7, 11.5, 14.7)},
	{Name: "Cross River", Display: Point{4.96, 8.33}, Terms: []string{"cross river", "calabar"}, Boundary: box(4.7, 6.9, 7.8, 9.4)},
	{Name: "Delta", Display: Point{6.20, 6.73}, Terms: []string{"delta", "asaba", "warri"}, Boundary: box(5.0, 6.5, 5.0, 6.8)},
	{Name: "Ebonyi", Display: Point{6.32, 8.11}, Terms: []string{"ebonyi", "abakaliki"}, Boundary: box(5.7, 6.8, 7.5, 8.4)},
	{Name: "Edo", Display: Point{6.34, 5.63}, Terms: []string{"edo", "benin city"}, Boundary: box(5.7, 7.6, 5.0, 6.7)},
	{Name: "Ekiti", Display: Point{7.62, 5.22}, Terms: []string{"ekiti", "ado ekiti", "ado-ekiti"}, Boundary: box(7.3, 8.1, 4.8, 5.8)},
	{Name: "Enugu", Display: Point{6.44, 7.50}, Terms: []string{"enugu", "nsukka"}, Boundary: box(6.0, 7.1, 7.0, 7.9)},
	{Name: "Federal Capital Territory", Display: Point{9.06, 7.49}, Terms: []string{"federal capital territory", "fct", "abuja"}, Boundary: box(8.4, 9.3, 6.7, 7.6)},
	{Name: "Gombe", Display: Point{10.29, 11.17}, Terms: []string{"gombe"}, Boundary: box(9.5, 11.2, 10.7, 11.8)},
	{Name: "Imo", Display: Point{5.48, 7.03}, Terms: []string{"imo", "owerri"}, Boundary: box(5.1, 6.0, 6.6, 7.4)},
	{Name: "Jigawa", Display: Point{11.70, 9.34}, Terms: []string{"jigawa", "dutse"}, Boundary: box(11.0, 13.0, 8.7, 10.4)},
	{Name: "Kaduna", Display: Point{10.52, 7.44}, Terms: []string{"kaduna", "zaria"}, Boundary: box(9.0, 11.3, 6.2, 8.8)},
	{Name: "Kano", Display: Point{12.00, 8.52}, Terms: []string{"kano"}, Boundary: box(10.5, 12.6, 7.7, 9.4)},
	{Name: "Katsina", Display: Point{12.99, 7.60}, Terms: []string{"katsina", "daura"}, Boundary: box(11.0, 13.4, 6.8, 8.1)},
	{Name: "Kebbi", Display: Point{12.45, 4.20}, Terms: []string{"kebbi", "birnin kebbi"}, Boundary: box(10.0, 13.2, 3.5, 5.3)},
	{Name: "Kogi", Display: Point{7.80, 6.74}, Terms: []string{"kogi", "lokoja"}, Boundary: box(6.5, 8.5, 5.4, 7.9)},
	{Name: "Kwara", Display: Point{8.50, 4.55}, Terms: []string{"kwara", "ilorin"}, Boundary: box(7.9, 10.1, 2.7, 6.1)},
	{Name: "Lagos", Display: Point{6.52, 3.37}, Terms: []string{"lagos", "ikeja", "lekki", "ikorodu"}, Boundary: box(6.2, 6.8, 2.7, 4.4)},
	{Name: "Nasarawa", Display: Point{8.49, 8.52}, Terms: []string{"nasarawa", "lafia"}, Boundary: box(7.7, 9.0, 7.0, 9.6)},
	// bare "niger" would swallow every address ending in "Nigeria"
	{Name: "Niger", Display: Point{9.61, 6.55}, Terms: []string{"niger state", "minna", "bida", "suleja"}, Boundary: box(8.1, 11.4, 3.6, 7.4)},
	{Name: "Ogun", Display: Point{7.15, 3.35}, Terms: []string{"ogun", "abeokuta"}, Boundary: box(6.2, 7.8, 2.7, 4.6)},
	{Name: "Ondo", Display: Point{7.25, 5.19}, Terms: []string{"ondo", "akure"}, Boundary: box(5.8, 7.8, 4.3, 6.0)},
	{Name: "Osun", Display: Point{7.77, 4.56}, Terms: []string{"osun", "osogbo", "ile-ife"}, Boundary: box(6.9, 8.1, 4.0, 5.1)},
	{Name: "Oyo", Display: Point{7.38, 3.90}, Terms: []string{"oyo", "ibadan"}, Boundary: box(7.0, 9.2, 2.8, 4.5)},
	{Name: "Plateau", Display: Point{9.92, 8.89}, Terms: []string{"plateau", "jos"}, Boundary: box(8.4, 10.4, 8.4, 10.6)},
	{Name: "Rivers", Display: Point{4.82, 7.03}, Terms: []string{"rivers", "port harcourt"}, Boundary: box(4.3, 5.7, 6.4, 7.6)},
	{Name: "Sokoto", Display: Point{13.06, 5.24}, Terms: []string{"sokoto"}, Boundary: box(11.7, 13.9, 4.1, 6.5)},
	{Name: "Taraba", Display: Point{8.89, 11.37}, Terms: []string{"taraba", "jalingo"}, Boundary: box(6.5, 9.6, 9.1, 11.8)},
	{Name: "Yobe", Display: Point{11.75, 11.96}, Terms: []string{"yobe", "damaturu"}, Boundary: box(10.6, 13.3, 9.8, 12.4)},
	{Name: "Zamfara", Display: Point{12.17, 6.66}, Terms: []string{"zamfara", "gusau"}, Boundary: box(11.0, 13.0, 5.0, 7.0)},
}

// Names returns every region name in catalog order.
func Names() []string {
	out := make([]string, len(Catalog))
	for i, r := range Catalog {
		out[i] = r.Name
	}
	return out
}
