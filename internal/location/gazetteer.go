package location

import "strings"

// Gazetteer is a static, bundled list of known places. Matching it costs no
// network call, and its entries always rank ahead of geocoder results.
type Gazetteer struct {
	entries []Location
}

// NewGazetteer creates a Gazetteer from the given entries.
func NewGazetteer(entries []Location) *Gazetteer {
	tagged := make([]Location, len(entries))
	for i, e := range entries {
		e.Origin = OriginGazetteer
		tagged[i] = e
	}
	return &Gazetteer{entries: tagged}
}

// Search returns entries whose display name contains query,
// case-insensitively, in bundled order.
func (g *Gazetteer) Search(query string) []Location {
	q := strings.ToLower(query)
	var matches []Location
	for _, e := range g.entries {
		if strings.Contains(strings.ToLower(e.Display), q) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Len returns the number of bundled entries.
func (g *Gazetteer) Len() int {
	return len(g.entries)
}

// Entries returns the bundled entries in order.
func (g *Gazetteer) Entries() []Location {
	out := make([]Location, len(g.entries))
	copy(out, g.entries)
	return out
}

// NepalGazetteer returns the bundled Nepal place list: major cities,
// district headquarters, and trekking destinations.
func NepalGazetteer() *Gazetteer {
	return NewGazetteer([]Location{
		// Major cities
		{Display: "Kathmandu, Bagmati, Nepal", Lat: 27.701690, Lng: 85.320600},
		{Display: "Pokhara, Gandaki, Nepal", Lat: 28.266890, Lng: 83.968510},
		{Display: "Lalitpur (Patan), Bagmati, Nepal", Lat: 27.668820, Lng: 85.316580},
		{Display: "Biratnagar, Koshi, Nepal", Lat: 26.455050, Lng: 87.270070},
		{Display: "Bharatpur, Chitwan, Nepal", Lat: 27.676940, Lng: 84.431760},
		{Display: "Birgunj, Madhesh, Nepal", Lat: 27.010400, Lng: 84.882100},
		{Display: "Dharan, Koshi, Nepal", Lat: 26.812160, Lng: 87.283790},
		{Display: "Butwal, Lumbini, Nepal", Lat: 27.700580, Lng: 83.448290},
		{Display: "Itahari, Koshi, Nepal", Lat: 26.666940, Lng: 87.273890},
		{Display: "Hetauda, Bagmati, Nepal", Lat: 27.428720, Lng: 85.032130},
		{Display: "Janakpur, Madhesh, Nepal", Lat: 26.728820, Lng: 85.924620},
		{Display: "Nepalgunj, Lumbini, Nepal", Lat: 28.050000, Lng: 81.616670},
		{Display: "Dhangadhi, Sudurpashchim, Nepal", Lat: 28.693330, Lng: 80.593610},
		{Display: "Bhaktapur, Bagmati, Nepal", Lat: 27.671520, Lng: 85.428130},
		{Display: "Kirtipur, Bagmati, Nepal", Lat: 27.678570, Lng: 85.277640},
		{Display: "Banepa, Bagmati, Nepal", Lat: 27.630530, Lng: 85.524240},
		{Display: "Damak, Koshi, Nepal", Lat: 26.662220, Lng: 87.699720},
		{Display: "Tulsipur, Lumbini, Nepal", Lat: 28.130830, Lng: 82.297220},
		{Display: "Siddharthanagar, Lumbini, Nepal", Lat: 27.503060, Lng: 83.450830},
		{Display: "Gorkha, Gandaki, Nepal", Lat: 28.000000, Lng: 84.628890},
		{Display: "Tansen, Lumbini, Nepal", Lat: 27.868610, Lng: 83.547500},
		{Display: "Dhulikhel, Bagmati, Nepal", Lat: 27.621940, Lng: 85.554720},
		{Display: "Birendranagar, Karnali, Nepal", Lat: 28.600280, Lng: 81.636940},
		{Display: "Damauli, Gandaki, Nepal", Lat: 27.965560, Lng: 84.279170},
		{Display: "Mechinagar, Koshi, Nepal", Lat: 26.653890, Lng: 88.015830},
		{Display: "Rajbiraj, Madhesh, Nepal", Lat: 26.538890, Lng: 86.750280},
		{Display: "Mahendranagar, Sudurpashchim, Nepal", Lat: 28.967500, Lng: 80.181110},
		{Display: "Tikapur, Sudurpashchim, Nepal", Lat: 28.528610, Lng: 81.123060},

		// Tourist and trekking destinations
		{Display: "Lumbini, Lumbini, Nepal", Lat: 27.483330, Lng: 83.276390},
		{Display: "Namche Bazaar, Koshi, Nepal", Lat: 27.806350, Lng: 86.714170},
		{Display: "Lukla, Koshi, Nepal", Lat: 27.686880, Lng: 86.728330},
		{Display: "Chitwan National Park, Bagmati, Nepal", Lat: 27.524440, Lng: 84.359440},
		{Display: "Nagarkot, Bagmati, Nepal", Lat: 27.715280, Lng: 85.520280},
		{Display: "Bandipur, Gandaki, Nepal", Lat: 27.933890, Lng: 84.416670},
		{Display: "Everest Base Camp, Koshi, Nepal", Lat: 28.002500, Lng: 86.852500},
		{Display: "Annapurna Base Camp, Gandaki, Nepal", Lat: 28.530830, Lng: 83.878060},
		{Display: "Tengboche, Koshi, Nepal", Lat: 27.836110, Lng: 86.763890},
		{Display: "Manang, Gandaki, Nepal", Lat: 28.666110, Lng: 84.016670},
		{Display: "Jomsom, Gandaki, Nepal", Lat: 28.781670, Lng: 83.731110},
		{Display: "Muktinath, Gandaki, Nepal", Lat: 28.817220, Lng: 83.867780},
		{Display: "Ghandruk, Gandaki, Nepal", Lat: 28.384170, Lng: 83.802220},
		{Display: "Langtang, Bagmati, Nepal", Lat: 28.215280, Lng: 85.501670},
		{Display: "Gosaikunda, Bagmati, Nepal", Lat: 28.083060, Lng: 85.416670},
		{Display: "Rara Lake, Karnali, Nepal", Lat: 29.518330, Lng: 82.088330},
		{Display: "Phewa Lake, Gandaki, Nepal", Lat: 28.210000, Lng: 83.955830},
		{Display: "Tilicho Lake, Gandaki, Nepal", Lat: 28.683060, Lng: 83.883060},
		{Display: "Upper Mustang, Gandaki, Nepal", Lat: 29.183330, Lng: 83.966110},
		{Display: "Sarangkot, Gandaki, Nepal", Lat: 28.244170, Lng: 83.945280},
		{Display: "Poon Hill, Gandaki, Nepal", Lat: 28.399720, Lng: 83.788890},
		{Display: "Swayambhunath, Bagmati, Nepal", Lat: 27.714680, Lng: 85.290370},
		{Display: "Boudhanath, Bagmati, Nepal", Lat: 27.721520, Lng: 85.361930},
		{Display: "Pashupatinath, Bagmati, Nepal", Lat: 27.710580, Lng: 85.348680},

		// District headquarters
		{Display: "Ilam, Koshi, Nepal", Lat: 26.909720, Lng: 87.926940},
		{Display: "Taplejung, Koshi, Nepal", Lat: 27.350830, Lng: 87.666670},
		{Display: "Dhankuta, Koshi, Nepal", Lat: 26.985560, Lng: 87.346940},
		{Display: "Bhojpur, Koshi, Nepal", Lat: 27.166940, Lng: 87.050560},
		{Display: "Sindhuli, Bagmati, Nepal", Lat: 27.249720, Lng: 85.968610},
		{Display: "Dolakha, Bagmati, Nepal", Lat: 27.652780, Lng: 86.069440},
		{Display: "Dhading, Bagmati, Nepal", Lat: 27.895560, Lng: 84.932220},
		{Display: "Baglung, Gandaki, Nepal", Lat: 28.268890, Lng: 83.593060},
		{Display: "Mustang, Gandaki, Nepal", Lat: 29.013890, Lng: 83.855280},
		{Display: "Palpa, Lumbini, Nepal", Lat: 27.866390, Lng: 83.546670},
		{Display: "Dang, Lumbini, Nepal", Lat: 28.115830, Lng: 82.305280},
		{Display: "Surkhet, Karnali, Nepal", Lat: 28.600000, Lng: 81.633060},
		{Display: "Jumla, Karnali, Nepal", Lat: 29.276390, Lng: 82.181940},
		{Display: "Dolpa, Karnali, Nepal", Lat: 29.013060, Lng: 82.866670},
		{Display: "Kailali, Sudurpashchim, Nepal", Lat: 28.546940, Lng: 80.901940},
		{Display: "Darchula, Sudurpashchim, Nepal", Lat: 29.848610, Lng: 80.546110},
		{Display: "Doti, Sudurpashchim, Nepal", Lat: 29.250000, Lng: 80.946940},
	})
}
