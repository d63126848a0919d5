package entity

// BundleComponent vincula un producto bundle con uno de sus componentes.
// Quantity indica cuántas unidades del componente lleva el bundle (siempre > 0).
// La resolución de stock de bundles anidados no se calcula aquí.
type BundleComponent struct {
	BundleID    int64
	ComponentID int64
	Quantity    int64
}
