package crawler

import (
	"reflect"
	"testing"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

func TestBuildCrawlURLs(t *testing.T) {
	tests := []struct {
		name    string
		listing developments.Listing
		want    []string
	}{
		{
			name: "website and operator slug page",
			listing: developments.Listing{
				Slug:       "the-castings",
				WebsiteURL: "https://thecastings.co.uk",
				Operator:   &developments.Organization{Website: "https://www.greystar.co.uk"},
			},
			want: []string{"https://thecastings.co.uk", "https://www.greystar.co.uk/the-castings"},
		},
		{
			name: "operator only without slug",
			listing: developments.Listing{
				Operator: &developments.Organization{Website: "greystar.co.uk"},
			},
			want: []string{"https://greystar.co.uk"},
		},
		{
			name: "scheme added to bare website",
			listing: developments.Listing{
				WebsiteURL: "thecastings.co.uk",
			},
			want: []string{"https://thecastings.co.uk"},
		},
		{
			name: "operator skipped on shared domain",
			listing: developments.Listing{
				Slug:       "kampus",
				WebsiteURL: "https://www.greystar.co.uk/kampus",
				Operator:   &developments.Organization{Website: "https://www.greystar.co.uk"},
			},
			want: []string{"https://www.greystar.co.uk/kampus"},
		},
		{
			name:    "nothing to crawl",
			listing: developments.Listing{Slug: "orphan"},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildCrawlURLs(&tt.listing)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildCrawlURLs = %v, want %v", got, tt.want)
			}
		})
	}
}
