package domains

import "testing"

func TestBaseDomain(t *testing.T) {
	t.Parallel()

	r := New()

	cases := []struct {
		url  string
		want string
	}{
		{"https://www.lemonde.fr/planete/article/2024/01/01/centrale.html", "lemonde.fr"},
		{"https://lemonde.fr/article", "lemonde.fr"},
		{"http://news.bbc.co.uk/story", "bbc.co.uk"},
		{"https://WWW.LeFigaro.FR/a", "lefigaro.fr"},
	}

	for _, tc := range cases {
		got, err := r.BaseDomain(tc.url)
		if err != nil {
			t.Fatalf("BaseDomain(%s): %v", tc.url, err)
		}
		if got != tc.want {
			t.Fatalf("BaseDomain(%s): expected %s, got %s", tc.url, tc.want, got)
		}
	}
}

func TestBaseDomainRejectsHostlessURL(t *testing.T) {
	t.Parallel()

	r := New()
	if _, err := r.BaseDomain("lemonde.fr/article"); err == nil {
		t.Fatal("expected an error for a URL without a host")
	}
}
