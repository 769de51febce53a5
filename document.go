package xps

import (
	"bytes"
	"fmt"
	"path"
	"strings"
)

const fixedRepresentationRel = "http://schemas.microsoft.com/xps/2005/06/fixedrepresentation"

// Document is the list of pages of an XPS package, in the order of its fixed document sequence.
type Document struct {
	Pages []string
}

// OpenDocument follows the package relationships to the fixed document sequence and collects the pages of all its documents.
func OpenDocument(pkg *Package) (*Document, error) {
	rels, err := readElement(pkg, "/_rels/.rels")
	if err != nil {
		return nil, err
	}
	seqName := ""
	for _, rel := range rels.Children {
		typ, _ := rel.Attr("Type")
		if rel.Name == "Relationship" && (typ == fixedRepresentationRel || strings.HasSuffix(typ, "/fixedrepresentation")) {
			seqName, _ = rel.Attr("Target")
			break
		}
	}
	if seqName == "" {
		return nil, fmt.Errorf("%w: fixed representation relationship", ErrResourceNotFound)
	}
	seqName = AbsolutePartName("/", seqName)

	seq, err := readElement(pkg, seqName)
	if err != nil {
		return nil, err
	} else if seq.Name != "FixedDocumentSequence" {
		return nil, fmt.Errorf("%s: expected FixedDocumentSequence, got %s", seqName, seq.Name)
	}

	doc := &Document{}
	for _, ref := range seq.Children {
		source, ok := ref.Attr("Source")
		if ref.Name != "DocumentReference" || !ok {
			continue
		}
		docName := AbsolutePartName(path.Dir(seqName), source)
		fixedDoc, err := readElement(pkg, docName)
		if err != nil {
			return nil, err
		}
		for _, content := range fixedDoc.Children {
			if source, ok := content.Attr("Source"); content.Name == "PageContent" && ok {
				doc.Pages = append(doc.Pages, AbsolutePartName(path.Dir(docName), source))
			}
		}
	}
	return doc, nil
}

func readElement(pkg *Package, name string) (*Element, error) {
	b, err := pkg.ReadPart(name)
	if err != nil {
		return nil, err
	}
	elem, err := ParseElement(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return elem, nil
}
