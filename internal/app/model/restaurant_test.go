package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_ArrayAndWrapped(t *testing.T) {
	array := []byte(`[{"name":"Chez Luigi","type":"restaurant","cuisine":["pizza","italian"],"lat":48.85,"lon":2.35}]`)
	wrapped := []byte(`{"restaurants":[{"name":"Sushi Bar","cuisine":"sushi","meta_geo_point":{"lat":45.76,"lon":4.83}}]}`)

	list, err := ParseCatalog(array)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Chez Luigi", list[0].Name)

	list, err = ParseCatalog(wrapped)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sushi Bar", list[0].Name)

	_, err = ParseCatalog([]byte(`not json`))
	assert.Error(t, err)
}

func TestNormalizeRaw(t *testing.T) {
	raws, err := ParseCatalog([]byte(`[
		{"name":"Chez Luigi","type":"restaurant","cuisine":["pizza"," italian "],"lat":48.85,"lon":2.35,
		 "vegetarian":"yes","vegan":"no","takeaway":"sandwitches"},
		{"name":"  ","cuisine":"sushi","meta_geo_point":{"lat":45.76,"lon":4.83},
		 "vegetarian":"limited","vegan":"only","takeaway":"limited"},
		{"name":"Flags","vegetarian":true,"vegan":1,"takeaway":"YES"},
		{"name":"No cuisine","cuisine":null,"cuisines":"kebab"}
	]`))
	require.NoError(t, err)
	require.Len(t, raws, 4)

	luigi := NormalizeRaw(raws[0])
	assert.Equal(t, "pizza,italian", luigi.Cuisines)
	assert.Equal(t, 48.85, luigi.Latitude)
	assert.True(t, luigi.Vegetarian)
	assert.False(t, luigi.Vegan)
	assert.True(t, luigi.Takeaway)

	unnamed := NormalizeRaw(raws[1])
	assert.Equal(t, UnnamedRestaurant, unnamed.Name)
	assert.Equal(t, 45.76, unnamed.Latitude)
	assert.Equal(t, 4.83, unnamed.Longitude)
	assert.True(t, unnamed.Vegetarian)
	assert.True(t, unnamed.Vegan)
	assert.False(t, unnamed.Takeaway, "limited is not a takeaway value")

	flags := NormalizeRaw(raws[2])
	assert.True(t, flags.Vegetarian)
	assert.True(t, flags.Vegan)
	assert.True(t, flags.Takeaway)
	assert.False(t, flags.HasLocation())

	assert.Equal(t, "kebab", NormalizeRaw(raws[3]).Cuisines)
}

func TestRestaurant_CuisineSetAndTypeTag(t *testing.T) {
	r := Restaurant{ID: 12, Cuisines: "Pizza, italien,,PIZZA", Type: " Fast_Food "}

	assert.Equal(t, []string{"pizza", "italien"}, r.CuisineSet())
	assert.Equal(t, "fast_food", r.TypeTag())
	assert.Equal(t, "12", r.IDString())
	assert.Empty(t, Restaurant{}.CuisineSet())
}

func TestStringArray_RoundTrip(t *testing.T) {
	v, err := StringArray{"restaurant", "cafe"}.Value()
	require.NoError(t, err)

	var s StringArray
	require.NoError(t, s.Scan(v))
	assert.Equal(t, StringArray{"restaurant", "cafe"}, s)

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)
	assert.Error(t, s.Scan(42))
}

func TestParseActionKind(t *testing.T) {
	for _, in := range []string{"view", "CLICK", " call ", "route", "website"} {
		_, ok := ParseActionKind(in)
		assert.True(t, ok, in)
	}
	_, ok := ParseActionKind("share")
	assert.False(t, ok)

	assert.False(t, ActionView.IsEngaging())
	assert.True(t, ActionRoute.IsEngaging())
}

func TestClickedRestaurant_Tokens(t *testing.T) {
	c := ClickedRestaurant{Cuisines: "pizza,Healthy", Type: "Restaurant"}
	assert.Equal(t, []string{"pizza", "healthy", "restaurant"}, c.Tokens())
	assert.Equal(t, []string{"pizza"}, ClickedRestaurant{Cuisines: "pizza"}.Tokens())
}

func TestNormalizeDiet(t *testing.T) {
	tests := map[string]DietPreference{
		"":             DietNone,
		"Végan":        DietVegan,
		"vegan strict": DietVegan,
		"Végétarien":   DietVegetarian,
		"vegetarian":   DietVegetarian,
		"vege":         DietVegetarian,
		"halal":        DietNone,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDiet(in), in)
	}
}

func TestUserPreferences_Matches(t *testing.T) {
	veggiePizza := Restaurant{Type: "restaurant", Vegetarian: true, Takeaway: true}
	burger := Restaurant{Type: "fast_food"}

	prefs := DefaultPreferences("u1")
	assert.True(t, prefs.Matches(burger))

	prefs.PreferredTypes = StringArray{"restaurant"}
	assert.True(t, prefs.Matches(veggiePizza))
	assert.False(t, prefs.Matches(burger))

	prefs.Diet = DietVegan
	assert.False(t, prefs.Matches(veggiePizza))

	prefs.Diet = DietVegetarian
	prefs.TakeawayPreferred = true
	assert.True(t, prefs.Matches(veggiePizza))
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, MaxLevel, LevelForXP(5000))
	assert.Equal(t, 1, LevelForXP(-10))
	assert.Equal(t, 42, Profile{XP: 142}.LevelProgress())
}
