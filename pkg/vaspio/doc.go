// Package vaspio reads the text output files of a VASP calculation into
// typed in-memory structures.
//
// # Overview
//
// Each reader is a single-pass, format-specific decoder over one file in the
// VASP working directory:
//
//   - POSCAR: lattice vectors, element names, and ion positions. The Poscar
//     type doubles as the geometry collaborator the config parser consults
//     for ion-name selections.
//   - IBZKPT: irreducible k-points and, when present, tetrahedron data for
//     Brillouin-zone integration.
//   - EIGENVAL: Kohn-Sham eigenvalues with k-point weights.
//   - DOSCAR: the Fermi energy.
//   - SYMMCAR: symmetry rotation matrices and ion permutation maps.
//
// Load reads all of them at once; SYMMCAR is optional.
//
// # Usage Example
//
//	data, err := vaspio.Load("./", vaspio.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(data.Doscar.EFermi)
//
// All returned structures are plain data and safe for concurrent reads.
package vaspio
